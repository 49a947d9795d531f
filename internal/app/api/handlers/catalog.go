package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divy97/rajawadu/internal/app/service/catalog"
	"github.com/Divy97/rajawadu/pkg/response"
)

// @Summary      List products
// @Description  Returns the full product catalog with categories.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/products [get]
func ApiListProducts(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(products))
	}
}

// @Summary      List featured products
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/products/featured [get]
func ApiFeaturedProducts(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.FeaturedProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(products))
	}
}

// @Summary      Get product by slug
// @Tags         Catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/products/{slug} [get]
func ApiGetProduct(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "product not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(product))
	}
}

// @Summary      List categories
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/categories [get]
func ApiListCategories(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(categories))
	}
}

func RegisterCatalogRoutes(r gin.IRouter, svc *catalog.Service) {
	r.GET("/products", ApiListProducts(svc))
	r.GET("/products/featured", ApiFeaturedProducts(svc))
	r.GET("/products/:slug", ApiGetProduct(svc))
	r.GET("/categories", ApiListCategories(svc))
}
