package models

// Admin is a row of the admin table. The password is stored and compared in
// plaintext.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
