package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// studentHandler handles HTTP requests for students.
type studentHandler struct {
	studentService portssvc.StudentSvcFacade
}

func newStudentHandler(studentService portssvc.StudentSvcFacade) *studentHandler {
	return &studentHandler{studentService: studentService}
}

// createStudent godoc
// @Summary Enroll a student
// @Tags students
// @Accept  json
// @Produce  json
// @Param   student body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 409 {object} map[string]string "Admission number already exists"
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "enroll student")
		return
	}

	logger.Info("Student enrolled", slog.String("student_id", student.StudentID))
	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// getStudent godoc
// @Summary Get a student
// @Tags students
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Router /students/{studentID} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	student, err := h.studentService.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve student")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Tags students
// @Produce  json
// @Param   classLevel query string false "Filter by class level"
// @Param   academicYearID query string false "Filter by academic year"
// @Success 200 {array} dto.StudentResponse
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list students")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponses(students))
}

// updateStudent godoc
// @Summary Update a student
// @Description The admission number is immutable
// @Tags students
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Router /students/{studentID} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	student, err := h.studentService.UpdateStudent(c.Request.Context(), studentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update student")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// deleteStudent godoc
// @Summary Delete a student
// @Tags students
// @Param   studentID path string true "Student ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Student not found"
// @Router /students/{studentID} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	if err := h.studentService.DeleteStudent(c.Request.Context(), studentID); err != nil {
		respondServiceError(c, logger, err, "delete student")
		return
	}

	logger.Info("Student deleted", slog.String("student_id", studentID))
	c.Status(http.StatusNoContent)
}

// registerStudentRoutes registers student specific routes
func registerStudentRoutes(group *gin.RouterGroup, studentService portssvc.StudentSvcFacade) {
	h := newStudentHandler(studentService)

	students := group.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:studentID", h.getStudent)
		students.PUT("/:studentID", h.updateStudent)
		students.DELETE("/:studentID", h.deleteStudent)
	}
}
