package model

// Course is a document in the `courses` collection. Modules and lessons are
// embedded rather than stored as separate documents, so a course is read and
// written as a single unit.
//
// ThumbnailKey is the stable object-store reference for the thumbnail image;
// ThumbnailURL is a derived, expiring download URL and is regenerated on
// every read path. Older documents may carry only a URL, which the refresh
// pass recovers a key from.
//
// Fields:
//  ID              – document id (generated).
//  Title           – course title.
//  Description     – free-form description.
//  InstructorID    – subject id of the authoring instructor.
//  InstructorName  – instructor display name, denormalized for listing.
//  Modules         – ordered embedded modules.
//  ThumbnailKey    – object key of the thumbnail (source of truth).
//  ThumbnailURL    – time-boxed download URL, never authoritative.
//  EnrollmentCount – number of enrolled students.
//  PublishStatus   – "Draft" or "Published".
type Course struct {
	ID              string   `bson:"_id" json:"uid"`
	Title           string   `bson:"title" json:"title"`
	Description     string   `bson:"description" json:"description"`
	InstructorID    string   `bson:"instructorId" json:"instructorId"`
	InstructorName  string   `bson:"instructorName" json:"instructorName"`
	Modules         []Module `bson:"modules" json:"modules"`
	ThumbnailKey    string   `bson:"thumbnailObjectKey" json:"thumbnailObjectKey"`
	ThumbnailURL    string   `bson:"thumbnailUrl" json:"thumbnailUrl"`
	EnrollmentCount int      `bson:"enrollmentCount" json:"enrollmentCount"`
	PublishStatus   string   `bson:"publishStatus" json:"publishStatus"`
}

// Module groups lessons inside a course.
type Module struct {
	ID      string   `bson:"moduleId" json:"moduleId"`
	Title   string   `bson:"title" json:"title"`
	Lessons []Lesson `bson:"lessons" json:"lessons"`
}

// Lesson is a single unit of course content. VideoKey/VideoURL follow the
// same key-is-truth, URL-is-derived contract as the course thumbnail.
type Lesson struct {
	ID          string `bson:"lessonId" json:"lessonId"`
	Title       string `bson:"title" json:"title"`
	VideoKey    string `bson:"videoObjectKey" json:"videoObjectKey"`
	VideoURL    string `bson:"videoUrl" json:"videoUrl"`
	TextContent string `bson:"textContent" json:"textContent"`
}
