package domain

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
	RoleUser  = "user"
)

// User is the account surface the marketplace consumes. Account creation and
// credential handling live in the identity service; this API only reads
// users, primarily for recipient resolution during alert fan-out.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	Role      string    `json:"role" dynamodbav:"role"`
	Enable    int       `json:"enable" dynamodbav:"enable"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}
