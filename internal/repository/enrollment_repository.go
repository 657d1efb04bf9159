package repository

import (
	"context"
	"errors"
	"log"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/store"
)

const enrollmentsCollection = "enrollments"

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
)

type EnrollmentRepo struct{ Store DocumentStore }

func NewEnrollmentRepo(s DocumentStore) *EnrollmentRepo { return &EnrollmentRepo{Store: s} }

// enrollmentID derives the document id from the (user, course) pair, so the
// store's per-document semantics give us duplicate detection without a
// multi-document transaction.
func enrollmentID(userID, courseID string) string { return userID + ":" + courseID }

// Get fetches the enrollment of a user in a course, if any.
func (r *EnrollmentRepo) Get(ctx context.Context, userID, courseID string) (model.Enrollment, error) {
	var e model.Enrollment
	err := r.Store.Get(ctx, enrollmentsCollection, enrollmentID(userID, courseID), &e)
	if errors.Is(err, store.ErrNotFound) {
		return model.Enrollment{}, ErrEnrollmentNotFound
	}
	return e, err
}

// Create persists a new enrollment. Returns ErrAlreadyEnrolled when the user
// already holds an enrollment for the course. The check-then-write pair is
// not atomic; a racing duplicate degenerates to an identical overwrite.
func (r *EnrollmentRepo) Create(ctx context.Context, e model.Enrollment) (model.Enrollment, error) {
	e.ID = enrollmentID(e.UserID, e.CourseID)
	if _, err := r.Get(ctx, e.UserID, e.CourseID); err == nil {
		return model.Enrollment{}, ErrAlreadyEnrolled
	} else if !errors.Is(err, ErrEnrollmentNotFound) {
		return model.Enrollment{}, err
	}
	if err := r.Store.Set(ctx, enrollmentsCollection, e.ID, e); err != nil {
		return model.Enrollment{}, err
	}
	return e, nil
}

// ListByUser returns all enrollments of a user.
func (r *EnrollmentRepo) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var list []model.Enrollment
	if err := r.Store.Query(ctx, enrollmentsCollection, "userId", userID, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IsEnrolled reports whether the user holds an enrollment for the course.
// A store error is logged and reported as not-enrolled; content access
// fails closed.
func (r *EnrollmentRepo) IsEnrolled(ctx context.Context, userID, courseID string) bool {
	_, err := r.Get(ctx, userID, courseID)
	if err != nil && !errors.Is(err, ErrEnrollmentNotFound) {
		log.Printf("enrollments: lookup user %s in course %s: %v", userID, courseID, err)
	}
	return err == nil
}
