package post

// Post mirrors the feed document shape: author fields are snapshotted onto
// the post at creation time, and the counters are kept in step with the
// post_likes rows and comment documents transactionally.
type Post struct {
	ID           string   `json:"post_id"`
	AuthorID     int      `json:"author_id"`
	AuthorName   string   `json:"author_name"`
	AuthorImage  string   `json:"author_image,omitempty"`
	Message      string   `json:"message"`
	Image        string   `json:"image,omitempty"`
	LikeCount    int      `json:"likeCount"`
	Likes        []int    `json:"likes,omitempty"`
	CommentCount int      `json:"commentCount"`
	CreatedAt    string   `json:"timestamp"`
}

// Fixed-width UTC timestamps sort lexicographically, which the feed ordering
// relies on.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"
