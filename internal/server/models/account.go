// Package models defines the account, match and message records persisted by
// the repositories and returned by the HTTP API.
package models

import "time"

// Variant names one of the two disjoint account populations.
type Variant string

const (
	VariantUser       Variant = "user"
	VariantRestaurant Variant = "restaurant"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantUser || v == VariantRestaurant
}

// Collection is the table / collection holding accounts of this variant.
func (v Variant) Collection() string {
	if v == VariantRestaurant {
		return "restaurants"
	}
	return "users"
}

// IDField is the name of the id attribute for this variant.
func (v Variant) IDField() string {
	if v == VariantRestaurant {
		return "rest_id"
	}
	return "user_id"
}

// Credentials is the part of an account the auth flow works with.
type Credentials struct {
	ID             string
	Variant        Variant
	Email          string
	HashedPassword []byte
	CreatedAt      time.Time
}

// User is a diner account. Profile fields are optional and replaced wholesale
// on update; Matches only grows through the match operations.
type User struct {
	ID             string    `json:"user_id" bson:"user_id"`
	Email          string    `json:"email" bson:"email"`
	HashedPassword []byte    `json:"-" bson:"hashed_password"`
	FirstName      string    `json:"first_name" bson:"first_name"`
	DobDay         string    `json:"dob_day" bson:"dob_day"`
	DobMonth       string    `json:"dob_month" bson:"dob_month"`
	DobYear        string    `json:"dob_year" bson:"dob_year"`
	ProfilePhoto   string    `json:"profile_photo" bson:"profile_photo"`
	Zipcode        string    `json:"zipcode" bson:"zipcode"`
	Matches        []Match   `json:"matches" bson:"matches"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// UserProfile holds the mutable fields of a User.
type UserProfile struct {
	FirstName    string
	DobDay       string
	DobMonth     string
	DobYear      string
	ProfilePhoto string
	Zipcode      string
}

// Restaurant is a venue account.
type Restaurant struct {
	ID             string    `json:"rest_id" bson:"rest_id"`
	Email          string    `json:"email" bson:"email"`
	HashedPassword []byte    `json:"-" bson:"hashed_password"`
	Name           string    `json:"rest_name" bson:"rest_name"`
	Logo           string    `json:"rest_logo" bson:"rest_logo"`
	Photo          string    `json:"rest_photo1" bson:"rest_photo1"`
	Description    string    `json:"rest_description" bson:"rest_description"`
	URL            string    `json:"rest_url" bson:"rest_url"`
	Phone          string    `json:"rest_phone" bson:"rest_phone"`
	FoodType       string    `json:"food_type" bson:"food_type"`
	Street         string    `json:"rest_street" bson:"rest_street"`
	Apt            string    `json:"rest_apt" bson:"rest_apt"`
	City           string    `json:"rest_city" bson:"rest_city"`
	State          string    `json:"rest_state" bson:"rest_state"`
	Zipcode        string    `json:"zipcode" bson:"zipcode"`
	Matches        []Match   `json:"matches" bson:"matches"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// RestaurantProfile holds the mutable fields of a Restaurant.
type RestaurantProfile struct {
	Name        string
	Logo        string
	Photo       string
	Description string
	URL         string
	Phone       string
	FoodType    string
	Street      string
	Apt         string
	City        string
	State       string
	Zipcode     string
}
