package entity

import "time"

// Comment is a reader remark attached to a blog post. Like blogs, it points
// at its author and post by id only.
type Comment struct {
	ID        int64     // Numeric identifier.
	Content   string    // Comment body.
	UserID    int64     // Author foreign key.
	BlogID    int64     // Post foreign key.
	CreatedAt time.Time // Timestamp of creation.
}

// BlogLike records that one user liked one post. The (BlogID, UserID) pair is
// unique; liking again removes the record (toggle semantics).
type BlogLike struct {
	ID        int64     // Numeric identifier.
	UserID    int64     // Liking user foreign key.
	BlogID    int64     // Post foreign key.
	CreatedAt time.Time // Timestamp of the like.
}
