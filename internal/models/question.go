package models

// Difficulty of a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Question is a single exercise belonging to exactly one topic.
type Question struct {
	ID          string     `bson:"_id" json:"id"`
	Goal        Goal       `bson:"goal" json:"goal"`
	TopicID     string     `bson:"topicId" json:"topicId"`
	Title       string     `bson:"title" json:"title"`
	Category    string     `bson:"category" json:"category"`
	Difficulty  Difficulty `bson:"difficulty" json:"difficulty"`
	Description string     `bson:"description" json:"description"`
	Solution    string     `bson:"solution,omitempty" json:"solution,omitempty"`
	Link        string     `bson:"link,omitempty" json:"link,omitempty"`
	Order       int        `bson:"order" json:"order"`
}
