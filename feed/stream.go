package feed

import (
	"birdlens/post"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS bridges a hub subscription over a websocket. The client receives
// the current snapshot immediately and a fresh full snapshot after every
// feed mutation; closing the connection tears the subscription down.
func ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Feed] Upgrade failed: %v", err)
		return
	}

	sub := Default.Subscribe()
	log.Printf("[Feed] Subscriber connected (%d active)", Default.Subscribers())

	// Reader exists only to notice the peer going away.
	go func() {
		defer sub.Unsubscribe()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()

		snapshot, err := post.LoadFeed()
		if err != nil {
			log.Printf("[Feed] Initial snapshot failed: %v", err)
			return
		}
		if err := conn.WriteJSON(snapshotMessage(snapshot)); err != nil {
			return
		}

		for snapshot := range sub.C {
			if err := conn.WriteJSON(snapshotMessage(snapshot)); err != nil {
				log.Printf("[Feed] Write failed, dropping subscriber: %v", err)
				sub.Unsubscribe()
				return
			}
		}
	}()
}

func snapshotMessage(posts []post.Post) map[string]interface{} {
	return map[string]interface{}{
		"type":  "feed_snapshot",
		"posts": posts,
	}
}
