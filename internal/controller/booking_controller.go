package controller

import (
	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	AddParticipants(ctx *fiber.Ctx) error
	RemoveParticipant(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	MyBookings(ctx *fiber.Ctx) error
}

type bookingController struct {
	bookingService service.IBookingService
}

func NewBookingController(bookingService service.IBookingService) IBookingController {
	return &bookingController{
		bookingService: bookingService,
	}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/booking/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("my", c.MyBookings)
	h.Patch(":id/cancel", c.Cancel)
	h.Post(":id/participants", c.AddParticipants)
	h.Delete(":id/participants/:phone", c.RemoveParticipant)
	h.Get(":id", c.Show)
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create booking", res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.bookingService.Cancel(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel booking", res))
}

func (c *bookingController) AddParticipants(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.AddBookingParticipantsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.AddParticipants(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add booking participants", res))
}

func (c *bookingController) RemoveParticipant(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	req := dto.RemoveBookingParticipantRequest{
		Id:    id,
		Phone: ctx.Params("phone"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.RemoveParticipant(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove booking participant", res))
}

func (c *bookingController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	role, _ := ctx.Locals("role").(string)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.bookingService.GetById(ctx.Context(), userId, role, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show booking", res))
}

func (c *bookingController) MyBookings(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.bookingService.MyBookings(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list my bookings", res))
}
