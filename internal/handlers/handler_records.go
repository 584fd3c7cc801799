package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// recordsHandler handles HTTP requests for scholarships, fines, budgets and
// expenses. These resources share a service and a handler because their CRUD
// surface is uniform.
type recordsHandler struct {
	recordsService portssvc.RecordsSvcFacade
}

func newRecordsHandler(recordsService portssvc.RecordsSvcFacade) *recordsHandler {
	return &recordsHandler{recordsService: recordsService}
}

// createScholarship godoc
// @Summary Award a scholarship to a student
// @Tags records
// @Accept  json
// @Produce  json
// @Param   scholarship body dto.CreateScholarshipRequest true "Scholarship"
// @Success 201 {object} dto.ScholarshipResponse
// @Router /scholarships [post]
func (h *recordsHandler) createScholarship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	scholarship, err := h.recordsService.CreateScholarship(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create scholarship")
		return
	}

	logger.Info("Scholarship created", slog.String("scholarship_id", scholarship.ScholarshipID))
	c.JSON(http.StatusCreated, dto.ToScholarshipResponse(scholarship))
}

func (h *recordsHandler) getScholarship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scholarship, err := h.recordsService.GetScholarshipByID(c.Request.Context(), c.Param("scholarshipID"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve scholarship")
		return
	}
	c.JSON(http.StatusOK, dto.ToScholarshipResponse(scholarship))
}

func (h *recordsHandler) listScholarships(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListScholarshipsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	scholarships, err := h.recordsService.ListScholarships(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list scholarships")
		return
	}
	c.JSON(http.StatusOK, dto.ToScholarshipResponses(scholarships))
}

func (h *recordsHandler) updateScholarship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	scholarship, err := h.recordsService.UpdateScholarship(c.Request.Context(), c.Param("scholarshipID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update scholarship")
		return
	}
	c.JSON(http.StatusOK, dto.ToScholarshipResponse(scholarship))
}

func (h *recordsHandler) deleteScholarship(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.recordsService.DeleteScholarship(c.Request.Context(), c.Param("scholarshipID")); err != nil {
		respondServiceError(c, logger, err, "delete scholarship")
		return
	}
	c.Status(http.StatusNoContent)
}

// createFine godoc
// @Summary Issue a fine against a student
// @Tags records
// @Accept  json
// @Produce  json
// @Param   fine body dto.CreateFineRequest true "Fine"
// @Success 201 {object} dto.FineResponse
// @Router /fines [post]
func (h *recordsHandler) createFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	fine, err := h.recordsService.CreateFine(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create fine")
		return
	}

	logger.Info("Fine issued", slog.String("fine_id", fine.FineID))
	c.JSON(http.StatusCreated, dto.ToFineResponse(fine))
}

func (h *recordsHandler) getFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fine, err := h.recordsService.GetFineByID(c.Request.Context(), c.Param("fineID"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve fine")
		return
	}
	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *recordsHandler) listFines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	fines, err := h.recordsService.ListFines(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list fines")
		return
	}
	c.JSON(http.StatusOK, dto.ToFineResponses(fines))
}

func (h *recordsHandler) updateFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	fine, err := h.recordsService.UpdateFine(c.Request.Context(), c.Param("fineID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update fine")
		return
	}
	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *recordsHandler) deleteFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.recordsService.DeleteFine(c.Request.Context(), c.Param("fineID")); err != nil {
		respondServiceError(c, logger, err, "delete fine")
		return
	}
	c.Status(http.StatusNoContent)
}

// createBudget godoc
// @Summary Allocate a budget to an expense account
// @Tags records
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Router /budgets [post]
func (h *recordsHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	budget, err := h.recordsService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create budget")
		return
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// getBudget godoc
// @Summary Get a budget with derived spend and variance
// @Tags records
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Router /budgets/{budgetID} [get]
func (h *recordsHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budget, err := h.recordsService.GetBudgetByID(c.Request.Context(), c.Param("budgetID"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *recordsHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	budgets, err := h.recordsService.ListBudgets(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponses(budgets))
}

func (h *recordsHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	budget, err := h.recordsService.UpdateBudget(c.Request.Context(), c.Param("budgetID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *recordsHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.recordsService.DeleteBudget(c.Request.Context(), c.Param("budgetID")); err != nil {
		respondServiceError(c, logger, err, "delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}

// createExpense godoc
// @Summary Record an expense, optionally against a budget
// @Tags records
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Router /expenses [post]
func (h *recordsHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	expense, err := h.recordsService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create expense")
		return
	}

	logger.Info("Expense recorded", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *recordsHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expense, err := h.recordsService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *recordsHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	expenses, err := h.recordsService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

func (h *recordsHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	expense, err := h.recordsService.UpdateExpense(c.Request.Context(), c.Param("expenseID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *recordsHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.recordsService.DeleteExpense(c.Request.Context(), c.Param("expenseID")); err != nil {
		respondServiceError(c, logger, err, "delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerRecordsRoutes registers scholarship, fine, budget and expense routes
func registerRecordsRoutes(group *gin.RouterGroup, recordsService portssvc.RecordsSvcFacade) {
	h := newRecordsHandler(recordsService)

	scholarships := group.Group("/scholarships")
	{
		scholarships.POST("", h.createScholarship)
		scholarships.GET("", h.listScholarships)
		scholarships.GET("/:scholarshipID", h.getScholarship)
		scholarships.PUT("/:scholarshipID", h.updateScholarship)
		scholarships.DELETE("/:scholarshipID", h.deleteScholarship)
	}

	fines := group.Group("/fines")
	{
		fines.POST("", h.createFine)
		fines.GET("", h.listFines)
		fines.GET("/:fineID", h.getFine)
		fines.PUT("/:fineID", h.updateFine)
		fines.DELETE("/:fineID", h.deleteFine)
	}

	budgets := group.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.PUT("/:budgetID", h.updateBudget)
		budgets.DELETE("/:budgetID", h.deleteBudget)
	}

	expenses := group.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}
