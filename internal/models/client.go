package models

// Client represents an organisation that owns medical equipment.
type Client struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"nombre" json:"nombre"`
}

// ClientRequest is the body accepted when creating or renaming a client.
type ClientRequest struct {
	Name string `json:"nombre" binding:"required"`
}
