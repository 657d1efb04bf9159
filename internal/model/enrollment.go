package model

import "time"

// Enrollment links a student to a course. One document per (user, course)
// pair lives in the `enrollments` collection.
//
// Fields:
//  ID         – document id (generated).
//  UserID     – subject id of the enrolled student.
//  CourseID   – id of the course enrolled in.
//  EnrolledAt – enrollment timestamp (UTC).
//  Progress   – completion fraction in [0, 1].
type Enrollment struct {
	ID         string    `bson:"_id" json:"uid"`
	UserID     string    `bson:"userId" json:"userId"`
	CourseID   string    `bson:"courseId" json:"courseId"`
	EnrolledAt time.Time `bson:"enrolledAt" json:"enrolledAt"`
	Progress   float64   `bson:"progress" json:"progress"`
}
