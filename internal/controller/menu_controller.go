package controller

import (
	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/pkg/serverutils"
	"menu-tree-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMenuController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	FindAllTree(ctx *fiber.Ctx) error
	FindOne(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
}

type menuController struct {
	service service.IMenuService
}

func NewMenuController(service service.IMenuService) IMenuController {
	return &menuController{service: service}
}

func (c *menuController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/menus")
	h.Get("", c.FindAllTree)
	h.Post("", c.Create)
	h.Get("/:id", c.FindOne)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Remove)
	h.Patch("/:id/move", c.Move)
	h.Patch("/:id/reorder", c.Reorder)
}

func (c *menuController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMenuRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponseWithCode(fiber.StatusCreated, "Success create menu", res))
}

func (c *menuController) FindAllTree(ctx *fiber.Ctx) error {
	res, err := c.service.FindAllTree(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get menu tree", res))
}

func (c *menuController) FindOne(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.FindOne(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show menu", res))
}

func (c *menuController) Update(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMenuRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update menu", res))
}

func (c *menuController) Remove(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Remove(ctx.UserContext(), id); err != nil {
		return err
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

func (c *menuController) Move(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.MoveMenuRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Move(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move menu", res))
}

func (c *menuController) Reorder(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.ReorderMenuRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Reorder(ctx.UserContext(), id, *req.Order)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reorder menu", res))
}

func parseID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid menu id")
	}
	return id, nil
}

// parseBody decodes JSON bodies; decoding failures (including malformed ids) are client errors.
func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return nil
}
