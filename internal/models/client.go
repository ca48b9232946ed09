package models

import "time"

// Client mirrors a row of the clients table.
type Client struct {
	ClientID    string  `db:"id"`
	UserID      string  `db:"user_id"`
	Name        string  `db:"name"`
	Whatsapp    *string `db:"whatsapp"`
	CPF         *string `db:"cpf"`
	RG          *string `db:"rg"`
	Address     *string `db:"address"`
	MotherName  *string `db:"mother_name"`
	Pix         *string `db:"pix"`
	Bank        *string `db:"bank"`
	Observation *string `db:"observation"`
	GroupName   *string `db:"group_name"`
	Rating      int     `db:"rating"`
	AuditFields
}

// ClientDocument mirrors a row of the client_documents table.
type ClientDocument struct {
	DocumentID string    `db:"id"`
	ClientID   string    `db:"client_id"`
	Name       string    `db:"name"`
	URL        string    `db:"url"`
	StorageKey string    `db:"storage_key"`
	MimeType   string    `db:"mime_type"`
	SizeBytes  int64     `db:"size_bytes"`
	CreatedAt  time.Time `db:"created_at"`
}
