package model

import "time"

// Movie is a film that screenings can be scheduled for.  It corresponds
// to a row in the `movies` table and is read-mostly reference data.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  DurationMin – running time in minutes.
//  CreatedAt   – timestamp when the movie was added.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	DurationMin uint32    // movies.duration_min
	CreatedAt   time.Time // movies.created_at
}
