package repository

import (
	"fmt"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the snake_bnb database
const (
	ownersCollection = "owners"
	snakesCollection = "snakes"
	cagesCollection  = "cages"
)

type ownerDocument struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	RegisteredDate time.Time            `bson:"registered_date"`
	Name           string               `bson:"name"`
	Email          string               `bson:"email"`
	SnakeIDs       []primitive.ObjectID `bson:"snake_ids"`
	CageIDs        []primitive.ObjectID `bson:"cage_ids"`
}

type snakeDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	RegisteredDate time.Time          `bson:"registered_date"`
	Species        string             `bson:"species"`
	Length         float64            `bson:"length"`
	Name           string             `bson:"name"`
	IsVenomous     bool               `bson:"is_venomous"`
}

type cageDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	RegisteredDate       time.Time          `bson:"registered_date"`
	Name                 string             `bson:"name"`
	Price                float64            `bson:"price"`
	SquareMeters         float64            `bson:"square_meters"`
	IsCarpeted           bool               `bson:"is_carpeted"`
	HasToys              bool               `bson:"has_toys"`
	AllowDangerousSnakes bool               `bson:"allow_dangerous_snakes"`
	Bookings             []bookingDocument  `bson:"bookings"`
}

type bookingDocument struct {
	GuestOwnerID *primitive.ObjectID `bson:"guest_owner_id"`
	GuestSnakeID *primitive.ObjectID `bson:"guest_snake_id"`
	BookedDate   *time.Time          `bson:"booked_date"`
	CheckInDate  time.Time           `bson:"check_in_date"`
	CheckOutDate time.Time           `bson:"check_out_date"`
	Review       string              `bson:"review,omitempty"`
	Rating       int                 `bson:"rating"`
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseObjectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func optionalObjectID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}

func newOwnerDocument(o *domain.Owner) (*ownerDocument, error) {
	snakeIDs, err := parseObjectIDs(o.SnakeIDs)
	if err != nil {
		return nil, err
	}
	cageIDs, err := parseObjectIDs(o.CageIDs)
	if err != nil {
		return nil, err
	}
	doc := &ownerDocument{
		RegisteredDate: o.RegisteredAt,
		Name:           o.Name,
		Email:          o.Email,
		SnakeIDs:       snakeIDs,
		CageIDs:        cageIDs,
	}
	if o.ID != "" {
		if doc.ID, err = parseObjectID(o.ID); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *ownerDocument) toDomain() *domain.Owner {
	return &domain.Owner{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		SnakeIDs:     hexIDs(d.SnakeIDs),
		CageIDs:      hexIDs(d.CageIDs),
		RegisteredAt: d.RegisteredDate,
	}
}

func newSnakeDocument(s *domain.Snake) *snakeDocument {
	return &snakeDocument{
		RegisteredDate: s.RegisteredAt,
		Species:        s.Species,
		Length:         s.Length,
		Name:           s.Name,
		IsVenomous:     s.IsVenomous,
	}
}

func (d *snakeDocument) toDomain() *domain.Snake {
	return &domain.Snake{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Species:      d.Species,
		Length:       d.Length,
		IsVenomous:   d.IsVenomous,
		RegisteredAt: d.RegisteredDate,
	}
}

func newBookingDocument(b domain.Booking) (bookingDocument, error) {
	owner, err := optionalObjectID(b.GuestOwnerID)
	if err != nil {
		return bookingDocument{}, err
	}
	snake, err := optionalObjectID(b.GuestSnakeID)
	if err != nil {
		return bookingDocument{}, err
	}
	return bookingDocument{
		GuestOwnerID: owner,
		GuestSnakeID: snake,
		BookedDate:   b.BookedAt,
		CheckInDate:  b.CheckIn,
		CheckOutDate: b.CheckOut,
		Review:       b.Review,
		Rating:       b.Rating,
	}, nil
}

func (d bookingDocument) toDomain() domain.Booking {
	b := domain.Booking{
		BookedAt: d.BookedDate,
		CheckIn:  d.CheckInDate,
		CheckOut: d.CheckOutDate,
		Review:   d.Review,
		Rating:   d.Rating,
	}
	if d.GuestOwnerID != nil {
		b.GuestOwnerID = d.GuestOwnerID.Hex()
	}
	if d.GuestSnakeID != nil {
		b.GuestSnakeID = d.GuestSnakeID.Hex()
	}
	return b
}

func newCageDocument(c *domain.Cage) (*cageDocument, error) {
	bookings := make([]bookingDocument, 0, len(c.Bookings))
	for _, b := range c.Bookings {
		doc, err := newBookingDocument(b)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, doc)
	}
	return &cageDocument{
		RegisteredDate:       c.RegisteredAt,
		Name:                 c.Name,
		Price:                c.Price,
		SquareMeters:         c.SquareMeters,
		IsCarpeted:           c.IsCarpeted,
		HasToys:              c.HasToys,
		AllowDangerousSnakes: c.AllowDangerousSnakes,
		Bookings:             bookings,
	}, nil
}

func (d *cageDocument) toDomain() *domain.Cage {
	bookings := make([]domain.Booking, len(d.Bookings))
	for i, b := range d.Bookings {
		bookings[i] = b.toDomain()
	}
	return &domain.Cage{
		ID:                   d.ID.Hex(),
		Name:                 d.Name,
		Price:                d.Price,
		SquareMeters:         d.SquareMeters,
		IsCarpeted:           d.IsCarpeted,
		HasToys:              d.HasToys,
		AllowDangerousSnakes: d.AllowDangerousSnakes,
		Bookings:             bookings,
		RegisteredAt:         d.RegisteredDate,
	}
}
