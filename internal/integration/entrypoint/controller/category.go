package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallet-ledger/backend/internal/application/usecase/category"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase    *category.CreateCategoryUseCase
	createSubUseCase *category.CreateSubcategoryUseCase
	listUseCase      *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	createUseCase *category.CreateCategoryUseCase,
	createSubUseCase *category.CreateSubcategoryUseCase,
	listUseCase *category.ListCategoriesUseCase,
) *CategoryController {
	return &CategoryController{
		createUseCase:    createUseCase,
		createSubUseCase: createSubUseCase,
		listUseCase:      listUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:  req.Name,
		Emoji: req.Emoji,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CategoryResponse{
		ID:            output.Category.ID.String(),
		Name:          output.Category.Name,
		Emoji:         output.Category.Emoji,
		Subcategories: []dto.SubcategoryResponse{},
	})
}

// CreateSubcategory handles POST /categories/:id/subcategories requests.
func (c *CategoryController) CreateSubcategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubcategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.createSubUseCase.Execute(ctx.Request.Context(), category.CreateSubcategoryInput{
		CategoryID: categoryID,
		Name:       req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSubcategoryResponse(output.Subcategory))
}
