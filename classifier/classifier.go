package classifier

import (
	"errors"
	"fmt"
)

// Labels is the fixed ordered class list of the bundled model. Prediction is
// the index of the maximum activation mapped through this list, so the order
// must match the model's output layer exactly.
var Labels = []string{
	"Asian Koel (Kokil)",
	"Black Drongo (Kalo Finge)",
	"Black-Winged Kite (Chil)",
	"Common Myna (Shalik)",
	"Common Tailorbird (Tuntuni)",
	"Coppersmith Barbet (Basanta Bouri)",
	"Heron (Bok)",
	"House Crow (Kak)",
	"Indian Roller (Neelkanth)",
	"Kingfisher (Machranga)",
	"Little Cormorant (Pankouri)",
	"Oriental Magpie Robin (Doel)",
	"Owl (Pecha)",
	"Perrot (Tiya)",
	"Red Vented Bulbul (Bulbuli)",
	"Red Wattled Lapwing (Lal Latika Hottiti)",
	"White Breasted Waterhen (Dahuk)",
	"White Rumped Shama (Shama)",
}

// Model is the inference collaborator: an image in, one activation per class
// out. The model itself lives outside this process.
type Model interface {
	Predict(imagePath string) ([]float64, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(imagePath string) ([]float64, error)

func (f ModelFunc) Predict(imagePath string) ([]float64, error) {
	return f(imagePath)
}

var ErrNoActivations = errors.New("model returned no activations")

// Classify runs the model and returns the label of the highest activation.
// First maximum wins on a tie; there is no confidence threshold and no
// top-k.
func Classify(m Model, imagePath string) (string, error) {
	activations, err := m.Predict(imagePath)
	if err != nil {
		return "", err
	}
	if len(activations) == 0 {
		return "", ErrNoActivations
	}
	if len(activations) != len(Labels) {
		return "", fmt.Errorf("model returned %d activations, want %d", len(activations), len(Labels))
	}

	best := 0
	for i, a := range activations {
		if a > activations[best] {
			best = i
		}
	}
	return Labels[best], nil
}
