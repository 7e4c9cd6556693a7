package models

// Topic is a named grouping of questions with a presentation order.
// Topics for a goal are stored denormalized as an array on the goal's
// catalog document.
type Topic struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Order int    `bson:"order" json:"order"`
}

// TopicCatalog is the per-goal catalog document.
type TopicCatalog struct {
	Goal   Goal    `bson:"_id" json:"goal"`
	Topics []Topic `bson:"topics" json:"topics"`
}

// LegacyTopic is the pre-migration shape: one document per topic.
type LegacyTopic struct {
	ID    string `bson:"_id" json:"id"`
	Goal  Goal   `bson:"goal" json:"goal"`
	Name  string `bson:"name" json:"name"`
	Order int    `bson:"order" json:"order"`
}
