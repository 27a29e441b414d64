package dto

// Requests reference other entities by id; controllers resolve them before
// the services see the model.

// FacultyRequest represents faculty creation and update data
type FacultyRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100" example:"Engineering"`
}

// ClassRoomRequest represents classroom creation and update data
type ClassRoomRequest struct {
	BuildingNumber int   `json:"buildingNumber" binding:"required" example:"1"`
	RoomNumber     int   `json:"roomNumber" binding:"required" example:"101"`
	FacultyID      int64 `json:"facultyId" binding:"required,gt=0" example:"1"`
}

// SubjectRequest represents subject creation and update data
type SubjectRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100" example:"Mathematics"`
	Description string `json:"description" binding:"required,notblank,max=500" example:"Linear algebra and calculus"`
}

// GroupRequest represents group creation and update data. SubjectIDs only
// apply on creation; the program is changed through the subject endpoints.
type GroupRequest struct {
	Name       string  `json:"name" binding:"required,notblank,max=100" example:"CS-101"`
	FacultyID  int64   `json:"facultyId" binding:"required,gt=0" example:"1"`
	SubjectIDs []int64 `json:"subjectIds" binding:"omitempty,dive,gt=0"`
}

// TeacherRequest represents teacher creation and update data. SubjectIDs
// only apply on creation.
type TeacherRequest struct {
	FirstName  string  `json:"firstName" binding:"required,notblank,max=100" example:"Ada"`
	LastName   string  `json:"lastName" binding:"required,notblank,max=100" example:"Lovelace"`
	SubjectIDs []int64 `json:"subjectIds" binding:"omitempty,dive,gt=0"`
}

// StudentRequest represents student creation and update data
type StudentRequest struct {
	FirstName string `json:"firstName" binding:"required,notblank,max=100" example:"John"`
	LastName  string `json:"lastName" binding:"required,notblank,max=100" example:"Doe"`
	GroupID   int64  `json:"groupId" binding:"required,gt=0" example:"1"`
}

// LectureRequest represents lecture creation and update data. Times use
// the HH:MM layout. GroupIDs only apply on creation.
type LectureRequest struct {
	SubjectID   int64   `json:"subjectId" binding:"required,gt=0" example:"1"`
	TeacherID   int64   `json:"teacherId" binding:"required,gt=0" example:"1"`
	ClassRoomID int64   `json:"classRoomId" binding:"required,gt=0" example:"1"`
	GroupIDs    []int64 `json:"groupIds" binding:"omitempty,dive,gt=0"`
	StartTime   string  `json:"startTime" binding:"required,datetime=15:04" example:"09:00"`
	EndTime     string  `json:"endTime" binding:"required,datetime=15:04" example:"10:30"`
}

// ScheduleRequest represents schedule creation and update data. LectureIDs
// only apply on creation; bookings go through the lecture endpoints.
type ScheduleRequest struct {
	Date       string  `json:"date" binding:"required,datetime=2006-01-02" example:"2024-04-01"`
	FacultyID  int64   `json:"facultyId" binding:"required,gt=0" example:"1"`
	LectureIDs []int64 `json:"lectureIds" binding:"omitempty,dive,gt=0"`
}

// ChangeTeacherRequest asks for a teacher's lectures in [From, To] to be
// handed over to substitutes
type ChangeTeacherRequest struct {
	TeacherID int64  `json:"teacherId" binding:"required,gt=0" example:"3"`
	From      string `json:"from" binding:"required,datetime=2006-01-02" example:"2024-04-01"`
	To        string `json:"to" binding:"required,datetime=2006-01-02" example:"2024-04-05"`
}

// BatchRequest wraps the items of a bulk creation. Either every item is
// stored or none is.
type BatchRequest[T any] struct {
	Items []T `json:"items" binding:"required,min=1,dive"`
}
