package dto

// BookCageRequest represents request to book a cage for a snake
type BookCageRequest struct {
	OwnerID  string `json:"owner_id" binding:"required"`
	SnakeID  string `json:"snake_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}
