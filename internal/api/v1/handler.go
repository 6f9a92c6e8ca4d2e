package v1

import (
	"strconv"
	"strings"

	"github.com/aurora-energy/kplcgateway/internal/constants"
	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/aurora-energy/kplcgateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	utility   service.UtilityService
	inquiries service.InquiryService
	inbox     service.InboxService
}

func NewHandler(logger *zap.Logger, utility service.UtilityService, inquiries service.InquiryService,
	inbox service.InboxService) *Handler {
	return &Handler{logger: logger, utility: utility, inquiries: inquiries, inbox: inbox}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// Balance runs a synchronous balance inquiry: dispatch, wait out the reply
// window, return the normalized result. Slow by design (up to the configured
// reply timeout); clients that cannot hold the connection use POST /v1/inquiries.
func (h *Handler) Balance(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request BalanceRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	result, err := h.utility.FetchBalance(ctx, service.FetchBalanceCommand{
		AccountNumber:   request.AccountNumber,
		RequesterMSISDN: request.Phone,
	})
	if err != nil {
		h.logger.Error("Balance inquiry failed",
			zap.Error(err),
			zap.String("account", request.AccountNumber))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newResultResponse(result))
}

func (h *Handler) Units(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request UnitsRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	result, err := h.utility.FetchUnits(ctx, service.FetchUnitsCommand{
		AccountNumber:   request.AccountNumber,
		RequesterMSISDN: request.Phone,
	})
	if err != nil {
		h.logger.Error("Units inquiry failed",
			zap.Error(err),
			zap.String("account", request.AccountNumber))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newResultResponse(result))
}

func (h *Handler) LastPayment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request LastPaymentRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	result, err := h.utility.FetchLastPayment(ctx, service.FetchLastPaymentCommand{
		AccountNumber:   request.AccountNumber,
		RequesterMSISDN: request.Phone,
	})
	if err != nil {
		h.logger.Error("Last payment inquiry failed",
			zap.Error(err),
			zap.String("account", request.AccountNumber))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newResultResponse(result))
}

func (h *Handler) Purchase(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request PurchaseRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	result, err := h.utility.PurchaseTokens(ctx, service.PurchaseTokensCommand{
		AccountNumber:   request.AccountNumber,
		Amount:          request.Amount,
		RequesterMSISDN: request.Phone,
	})
	if err != nil {
		h.logger.Error("Token purchase failed",
			zap.Error(err),
			zap.String("account", request.AccountNumber))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newResultResponse(result))
}

func (h *Handler) CreateInquiry(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request CreateInquiryRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	kind, ok := parseInquiryKind(request.Kind)
	if !ok {
		h.logger.Warn("Unknown inquiry kind", zap.String("kind", request.Kind))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidCommand,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidCommand),
		})
	}

	clientInquiryID := request.ClientInquiryID
	if clientInquiryID == "" {
		clientInquiryID = uuid.NewString()
	}

	resp, err := h.inquiries.CreateInquiryTx(ctx, service.CreateInquiryCommand{
		ClientInquiryID: clientInquiryID,
		Kind:            kind,
		AccountNumber:   request.AccountNumber,
		Amount:          request.Amount,
		RequesterMSISDN: request.Phone,
	})
	if err != nil {
		h.logger.Error("Failed to create inquiry",
			zap.Error(err),
			zap.String("kind", request.Kind),
			zap.String("clientInquiryID", clientInquiryID))
		return err
	}

	h.logger.Info("Inquiry accepted",
		zap.Int64("inquiryID", resp.InquiryID),
		zap.String("kind", request.Kind),
		zap.String("clientInquiryID", clientInquiryID))

	return c.Status(fiber.StatusAccepted).JSON(
		CreateInquiryResponse{InquiryID: resp.InquiryID, Status: string(model.InquiryStatusCreated)})
}

func (h *Handler) GetInquiry(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	row, err := h.inquiries.GetInquiry(ctx, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newInquiryResponse(row))
}

// InboundSMS is the provider callback: every SMS delivered to a subscriber
// number lands here and is appended to the inbox the correlator reads.
func (h *Handler) InboundSMS(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request InboundSMSRequest
	if err := c.BodyParser(&request); err != nil {
		return h.invalidBody(c, err)
	}

	err := h.inbox.RecordInbound(ctx, service.RecordInboundCommand{
		Sender:        request.From,
		Recipient:     request.To,
		Text:          request.Text,
		ProviderMsgID: request.MessageID,
	})
	if err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *Handler) invalidBody(c *fiber.Ctx, err error) error {
	h.logger.Warn("Failed to parse body",
		zap.Error(err),
		zap.String("body", string(c.Body())))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    constants.ErrCodeInvalidRequestBody,
		"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
	})
}

func parseInquiryKind(s string) (model.InquiryKind, bool) {
	switch strings.ToLower(s) {
	case "balance":
		return model.InquiryKindBalance, true
	case "token_purchase", "purchase":
		return model.InquiryKindTokenPurchase, true
	case "units":
		return model.InquiryKindUnits, true
	case "last_payment":
		return model.InquiryKindLastPayment, true
	default:
		return "", false
	}
}
