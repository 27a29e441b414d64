package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/unischedule/internal/app/controllers"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Faculty   *controllers.FacultyController
	ClassRoom *controllers.ClassRoomController
	Subject   *controllers.SubjectController
	Group     *controllers.GroupController
	Teacher   *controllers.TeacherController
	Student   *controllers.StudentController
	Lecture   *controllers.LectureController
	Schedule  *controllers.ScheduleController
	Timetable *controllers.TimetableController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	faculties := v1.Group("/faculties")
	{
		faculties.POST("", c.Faculty.CreateFaculty)
		faculties.POST("/batch", c.Faculty.CreateFaculties)
		faculties.GET("", c.Faculty.GetAllFaculties)
		faculties.GET("/:id", c.Faculty.GetFacultyByID)
		faculties.PUT("/:id", c.Faculty.UpdateFaculty)
		faculties.DELETE("/:id", c.Faculty.DeleteFaculty)
	}

	classRooms := v1.Group("/classrooms")
	{
		classRooms.POST("", c.ClassRoom.CreateClassRoom)
		classRooms.POST("/batch", c.ClassRoom.CreateClassRooms)
		classRooms.GET("", c.ClassRoom.GetClassRooms)
		classRooms.GET("/:id", c.ClassRoom.GetClassRoomByID)
		classRooms.PUT("/:id", c.ClassRoom.UpdateClassRoom)
		classRooms.DELETE("/:id", c.ClassRoom.DeleteClassRoom)
	}

	subjects := v1.Group("/subjects")
	{
		subjects.POST("", c.Subject.CreateSubject)
		subjects.POST("/batch", c.Subject.CreateSubjects)
		subjects.GET("", c.Subject.GetAllSubjects)
		subjects.GET("/:id", c.Subject.GetSubjectByID)
		subjects.PUT("/:id", c.Subject.UpdateSubject)
		subjects.DELETE("/:id", c.Subject.DeleteSubject)

		// Qualifications and study programs
		subjects.POST("/:id/teachers/:teacherId", c.Subject.AssignTeacher())
		subjects.DELETE("/:id/teachers/:teacherId", c.Subject.UnassignTeacher())
		subjects.POST("/:id/groups/:groupId", c.Subject.AssignGroup())
		subjects.DELETE("/:id/groups/:groupId", c.Subject.UnassignGroup())
	}

	groups := v1.Group("/groups")
	{
		groups.POST("", c.Group.CreateGroup)
		groups.POST("/batch", c.Group.CreateGroups)
		groups.GET("", c.Group.GetGroups)
		groups.GET("/:id", c.Group.GetGroupByID)
		groups.PUT("/:id", c.Group.UpdateGroup)
		groups.DELETE("/:id", c.Group.DeleteGroup)
	}

	teachers := v1.Group("/teachers")
	{
		teachers.POST("", c.Teacher.CreateTeacher)
		teachers.POST("/batch", c.Teacher.CreateTeachers)
		teachers.GET("", c.Teacher.GetTeachers)
		teachers.GET("/:id", c.Teacher.GetTeacherByID)
		teachers.PUT("/:id", c.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", c.Teacher.DeleteTeacher)
	}

	students := v1.Group("/students")
	{
		students.POST("", c.Student.CreateStudent)
		students.POST("/batch", c.Student.CreateStudents)
		students.GET("", c.Student.GetStudents)
		students.GET("/:id", c.Student.GetStudentByID)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
	}

	lectures := v1.Group("/lectures")
	{
		lectures.POST("", c.Lecture.CreateLecture)
		lectures.POST("/batch", c.Lecture.CreateLectures)
		lectures.GET("", c.Lecture.GetLectures)
		lectures.GET("/:id", c.Lecture.GetLectureByID)
		lectures.PUT("/:id", c.Lecture.UpdateLecture)
		lectures.DELETE("/:id", c.Lecture.DeleteLecture)
		lectures.POST("/:id/groups/:groupId", c.Lecture.AddGroup)
		lectures.DELETE("/:id/groups/:groupId", c.Lecture.RemoveGroup)
	}

	schedules := v1.Group("/schedules")
	{
		schedules.POST("", c.Schedule.CreateSchedule)
		schedules.POST("/batch", c.Schedule.CreateSchedules)
		schedules.POST("/change-teacher", c.Schedule.ChangeTeacher)
		schedules.GET("", c.Schedule.GetSchedules)
		schedules.GET("/:id", c.Schedule.GetScheduleByID)
		schedules.PUT("/:id", c.Schedule.UpdateSchedule)
		schedules.DELETE("/:id", c.Schedule.DeleteSchedule)
		schedules.POST("/:id/lectures/:lectureId", c.Schedule.BookLecture)
		schedules.DELETE("/:id/lectures/:lectureId", c.Schedule.UnbookLecture)
	}

	timetable := v1.Group("/timetable")
	{
		timetable.GET("/days/:date", c.Timetable.GetDaySchedule)
		timetable.GET("/teachers/:id/days/:date", c.Timetable.GetTeacherDaySchedule)
		timetable.GET("/teachers/:id/months/:year/:month", c.Timetable.GetTeacherMonthSchedule)
		timetable.GET("/students/:id/days/:date", c.Timetable.GetStudentDaySchedule)
		timetable.GET("/students/:id/months/:year/:month", c.Timetable.GetStudentMonthSchedule)
	}
}
