package models

import "time"

// Message is one immutable entry of a conversation addressed by the directed
// pair (FromUserID, ToRestID).
type Message struct {
	ID         string    `json:"id" bson:"id"`
	FromUserID string    `json:"from_userId" bson:"from_userId"`
	ToRestID   string    `json:"to_restId" bson:"to_restId"`
	Body       string    `json:"message" bson:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
