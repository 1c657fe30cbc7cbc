package storage

import (
	"sort"

	"github.com/mcoot/brewduel/internal/model"
)

// SortRoomsByAge orders rooms oldest first, breaking ties on id.
// This is the deterministic order matchmaking relies on.
func SortRoomsByAge(rooms []*model.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
}
