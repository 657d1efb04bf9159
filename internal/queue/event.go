// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// EnrollmentConfirmedEvent is published when a student successfully enrolls
// in a course. It carries enough information for downstream consumers to
// log or notify without querying the primary store.
type EnrollmentConfirmedEvent struct {
	EnrollmentID string `json:"enrollment_id"`
	UserID       string `json:"user_id"`
	CourseID     string `json:"course_id"`
	CourseTitle  string `json:"course_title"`
	EnrolledAt   string `json:"enrolled_at"`
}
