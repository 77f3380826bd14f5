package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestSeatRowColumnName(t *testing.T) {
	s, err := schema.Parse(&Seat{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("Row")
	require.NotNil(t, field)
	// row is a reserved word in postgres; raw predicates in the seat
	// repository rely on this column name.
	assert.Equal(t, "seat_row", field.DBName)
}

func TestTicketSessionSeatUniqueIndex(t *testing.T) {
	s, err := schema.Parse(&Ticket{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{"SessionID", "SeatID"} {
		field := s.LookUpField(name)
		require.NotNil(t, field)
		assert.Contains(t, field.TagSettings["UNIQUEINDEX"], "idx_ticket_session_seat")
	}
}

func TestCustomerAgeAt(t *testing.T) {
	customer := &Customer{Birthdate: time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 24, customer.AgeAt(time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, customer.AgeAt(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestWindowEnd(t *testing.T) {
	start := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	movie := &Movie{DurationMin: 135}

	assert.Equal(t, start.Add(135*time.Minute), WindowEnd(start, movie))
}
