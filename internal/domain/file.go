package domain

import "time"

// File is the metadata record for an object stored in S3.
type File struct {
	FileID    string    `json:"id" dynamodbav:"file_id"`
	Object    string    `json:"object" dynamodbav:"object"`
	Size      int64     `json:"size" dynamodbav:"size"`
	Type      string    `json:"type" dynamodbav:"type"`
	Name      string    `json:"name" dynamodbav:"name"`
	Hash      string    `json:"hash" dynamodbav:"hash"`
	URL       string    `json:"url,omitempty" dynamodbav:"url"`
	IsPrivate bool      `json:"is_private" dynamodbav:"is_private"`
	OwnerID   string    `json:"owner_id" dynamodbav:"owner_id"`
	Enable    bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}
