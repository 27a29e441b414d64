// Package docs registers the OpenAPI document served under /swagger.
// Rebuild it with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/faculties": {
            "get": {"tags": ["faculties"], "summary": "List all faculties", "responses": {"200": {"description": "Faculties retrieved successfully"}}},
            "post": {"tags": ["faculties"], "summary": "Create a new faculty", "responses": {"201": {"description": "Faculty created successfully"}, "409": {"description": "Faculty name already exists"}}}
        },
        "/classrooms": {
            "get": {"tags": ["classrooms"], "summary": "List classrooms", "responses": {"200": {"description": "Classrooms retrieved successfully"}}},
            "post": {"tags": ["classrooms"], "summary": "Create a new classroom", "responses": {"201": {"description": "Classroom created successfully"}}}
        },
        "/subjects": {
            "get": {"tags": ["subjects"], "summary": "List all subjects", "responses": {"200": {"description": "Subjects retrieved successfully"}}},
            "post": {"tags": ["subjects"], "summary": "Create a new subject", "responses": {"201": {"description": "Subject created successfully"}}}
        },
        "/groups": {
            "get": {"tags": ["groups"], "summary": "List groups", "responses": {"200": {"description": "Groups retrieved successfully"}}},
            "post": {"tags": ["groups"], "summary": "Create a new group", "responses": {"201": {"description": "Group created successfully"}}}
        },
        "/teachers": {
            "get": {"tags": ["teachers"], "summary": "List teachers", "responses": {"200": {"description": "Teachers retrieved successfully"}}},
            "post": {"tags": ["teachers"], "summary": "Create a new teacher", "responses": {"201": {"description": "Teacher created successfully"}}}
        },
        "/students": {
            "get": {"tags": ["students"], "summary": "List students", "responses": {"200": {"description": "Students retrieved successfully"}}},
            "post": {"tags": ["students"], "summary": "Create a new student", "responses": {"201": {"description": "Student created successfully"}}}
        },
        "/lectures": {
            "get": {"tags": ["lectures"], "summary": "List lectures", "responses": {"200": {"description": "Lectures retrieved successfully"}}},
            "post": {"tags": ["lectures"], "summary": "Create a new lecture", "responses": {"201": {"description": "Lecture created successfully"}}}
        },
        "/schedules": {
            "get": {"tags": ["schedules"], "summary": "List schedules", "responses": {"200": {"description": "Schedules retrieved successfully"}}},
            "post": {"tags": ["schedules"], "summary": "Create a new day schedule", "responses": {"201": {"description": "Schedule created successfully"}}}
        },
        "/schedules/{id}/lectures/{lectureId}": {
            "post": {"tags": ["schedules"], "summary": "Book a lecture into a schedule", "responses": {"200": {"description": "Lecture booked"}, "422": {"description": "Booking conflict"}}},
            "delete": {"tags": ["schedules"], "summary": "Remove a lecture from a schedule", "responses": {"200": {"description": "Lecture removed"}}}
        },
        "/schedules/change-teacher": {
            "post": {"tags": ["schedules"], "summary": "Substitute a teacher over a period", "responses": {"200": {"description": "Lectures reassigned"}}}
        },
        "/timetable/days/{date}": {
            "get": {"tags": ["timetable"], "summary": "Get the schedule of a day", "responses": {"200": {"description": "Schedule retrieved successfully"}, "404": {"description": "No schedule on that date"}}}
        },
        "/timetable/teachers/{id}/months/{year}/{month}": {
            "get": {"tags": ["timetable"], "summary": "Get a teacher's month", "responses": {"200": {"description": "Schedules retrieved successfully"}}}
        },
        "/timetable/students/{id}/months/{year}/{month}": {
            "get": {"tags": ["timetable"], "summary": "Get a student's month", "responses": {"200": {"description": "Schedules retrieved successfully"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "UniSchedule API",
	Description:      "API for university lecture scheduling",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
