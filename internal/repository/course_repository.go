package repository

import (
	"context"
	"errors"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/store"
)

const coursesCollection = "courses"

var ErrCourseNotFound = errors.New("course not found")

type CourseRepo struct{ Store DocumentStore }

func NewCourseRepo(s DocumentStore) *CourseRepo { return &CourseRepo{Store: s} }

// Get fetches a course by id.
func (r *CourseRepo) Get(ctx context.Context, id string) (model.Course, error) {
	var c model.Course
	err := r.Store.Get(ctx, coursesCollection, id, &c)
	if errors.Is(err, store.ErrNotFound) {
		return model.Course{}, ErrCourseNotFound
	}
	return c, err
}

// List returns every course in the catalog.
func (r *CourseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.Store.Query(ctx, coursesCollection, "", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListByInstructor returns courses authored by the given instructor.
func (r *CourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]model.Course, error) {
	var courses []model.Course
	if err := r.Store.Query(ctx, coursesCollection, "instructorId", instructorID, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Save writes the full course document under its id.
func (r *CourseRepo) Save(ctx context.Context, c model.Course) error {
	return r.Store.Set(ctx, coursesCollection, c.ID, c)
}

// Delete removes a course document.
func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, coursesCollection, id)
}
