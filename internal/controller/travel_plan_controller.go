package controller

import (
	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITravelPlanController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	AddParticipant(ctx *fiber.Ctx) error
	RemoveParticipant(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ShowBySlug(ctx *fiber.Ctx) error
	ListPublic(ctx *fiber.Ctx) error
	MyPlans(ctx *fiber.Ctx) error
	PopularDestinations(ctx *fiber.Ctx) error
}

type travelPlanController struct {
	travelPlanService service.ITravelPlanService
}

func NewTravelPlanController(travelPlanService service.ITravelPlanService) ITravelPlanController {
	return &travelPlanController{
		travelPlanService: travelPlanService,
	}
}

func (c *travelPlanController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/travel/v1")

	// Public reads
	h.Get("", c.ListPublic)
	h.Get("popular-destinations", c.PopularDestinations)
	h.Get("slug/:slug", c.ShowBySlug)

	// Protected writes. Specific paths before the :id catch-all.
	h.Post("", serverutils.JwtMiddleware, c.Create)
	h.Get("my", serverutils.JwtMiddleware, c.MyPlans)
	h.Patch(":id/approve", serverutils.JwtMiddleware, serverutils.AdminOnly, c.Approve)
	h.Patch(":id/cancel", serverutils.JwtMiddleware, c.Cancel)
	h.Post(":id/participants", serverutils.JwtMiddleware, c.AddParticipant)
	h.Delete(":id/participants/:phone", serverutils.JwtMiddleware, c.RemoveParticipant)
	h.Put(":id", serverutils.JwtMiddleware, c.Update)
	h.Get(":id", c.Show)
}

func (c *travelPlanController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateTravelPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.travelPlanService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create travel plan", res))
}

func (c *travelPlanController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateTravelPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.travelPlanService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update travel plan", res))
}

func (c *travelPlanController) Approve(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.ApproveTravelPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.travelPlanService.Approve(ctx.Context(), role, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success review travel plan approval", res))
}

func (c *travelPlanController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.travelPlanService.Cancel(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel travel plan", res))
}

func (c *travelPlanController) AddParticipant(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.ParticipantPayload
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.travelPlanService.AddParticipant(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add participant", res))
}

func (c *travelPlanController) RemoveParticipant(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)
	phone := ctx.Params("phone")

	res, err := c.travelPlanService.RemoveParticipant(ctx.Context(), userId, id, phone)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove participant", res))
}

func (c *travelPlanController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.travelPlanService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show travel plan", res))
}

func (c *travelPlanController) ShowBySlug(ctx *fiber.Ctx) error {
	res, err := c.travelPlanService.GetBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show travel plan", res))
}

func (c *travelPlanController) ListPublic(ctx *fiber.Ctx) error {
	res, err := c.travelPlanService.ListPublic(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list travel plans", res))
}

func (c *travelPlanController) MyPlans(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.travelPlanService.MyPlans(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list my travel plans", res))
}

func (c *travelPlanController) PopularDestinations(ctx *fiber.Ctx) error {
	res, err := c.travelPlanService.PopularDestinations(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list popular destinations", res))
}
