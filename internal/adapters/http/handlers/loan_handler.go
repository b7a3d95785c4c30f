package handlers

import (
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/pagination"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService services.LoanUseCase
	log         zerolog.Logger
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LoanUseCase, log zerolog.Logger) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		log:         log,
	}
}

// LoanRequest represents a loan request or simulation body
type LoanRequest struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"number"`
	InterestRate decimal.Decimal `json:"interestRate" swaggertype:"number"`
	TermInMonths int             `json:"termInMonths"`
}

func (r LoanRequest) input() services.CreateLoanInput {
	return services.CreateLoanInput{
		Amount:       r.Amount,
		InterestRate: r.InterestRate,
		TermInMonths: r.TermInMonths,
	}
}

// ReviewRequest represents a review decision
type ReviewRequest struct {
	Status        string  `json:"status" validate:"required"`
	AdminComments *string `json:"adminComments" validate:"omitempty,max=500"`
}

// Create handles a new loan request for the caller
// @Summary Request a loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LoanRequest true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req LoanRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	userID, _ := caller(c)
	loan, err := h.loanService.CreateLoan(c.UserContext(), userID, req.input())
	if err != nil {
		return fail(c, h.log, err, "Failed to create loan")
	}

	h.log.Info().
		Str("loan_id", loan.ID.String()).
		Str("user_id", userID.String()).
		Str("amount", loan.Amount.StringFixed(2)).
		Msg("loan requested")
	return response.Created(c, "Loan requested successfully", loan)
}

// MyLoans lists the caller's loans
// @Summary My loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/my-loans [get]
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	userID, _ := caller(c)
	loans, err := h.loanService.GetLoansForUser(c.UserContext(), userID)
	if err != nil {
		return fail(c, h.log, err, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", loans)
}

// List lists every loan (Admin only)
// @Summary List all loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Approved or Rejected"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	page, err := h.loanService.GetAllLoans(c.UserContext(), services.ListLoansInput{
		Status: c.Query("status"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return fail(c, h.log, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(page.Loans, params, page.Total))
}

// Get returns one loan to its owner or an admin
// @Summary Get loan by ID
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetLoanByID(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err, "Failed to get loan")
	}

	if userID, isAdmin := caller(c); !isAdmin && loan.UserID != userID {
		return response.Forbidden(c, "You don't have permission to access this loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// Review approves or rejects a pending loan (Admin only)
// @Summary Review loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body ReviewRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/review [put]
func (h *LoanHandler) Review(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req ReviewRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	loan, err := h.loanService.ReviewLoan(c.UserContext(), id, services.ReviewLoanInput{
		Status:        req.Status,
		AdminComments: req.AdminComments,
	})
	if err != nil {
		return fail(c, h.log, err, "Failed to review loan")
	}

	adminID, _ := caller(c)
	h.log.Info().
		Str("loan_id", loan.ID.String()).
		Str("admin_id", adminID.String()).
		Str("status", string(loan.Status)).
		Msg("loan reviewed")
	return response.Success(c, "Loan reviewed successfully", loan)
}

// Delete removes a loan owned by the caller, or any loan for an admin
// @Summary Delete loan
// @Tags Loans
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetLoanByID(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err, "Failed to delete loan")
	}
	if userID, isAdmin := caller(c); !isAdmin && loan.UserID != userID {
		return response.Forbidden(c, "You don't have permission to delete this loan")
	}

	deleted, err := h.loanService.DeleteLoan(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err, "Failed to delete loan")
	}
	if !deleted {
		return response.NotFound(c, "loan not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Calculate simulates a loan without storing it
// @Summary Simulate monthly payment
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body LoanRequest true "Simulation input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans/calculate [post]
func (h *LoanHandler) Calculate(c *fiber.Ctx) error {
	var req LoanRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	quote, err := h.loanService.Quote(c.UserContext(), req.input())
	if err != nil {
		return fail(c, h.log, err, "Failed to calculate payment")
	}

	return response.Success(c, "Payment calculated successfully", quote)
}
