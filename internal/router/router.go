package router

import (
	"net/http"

	"github.com/partsflow/procurement-service/internal/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(
	demandHandler *handlers.DemandHandler,
	quoteHandler *handlers.QuoteHandler,
	orderHandler *handlers.OrderHandler,
	vendorHandler *handlers.VendorHandler,
	masterDataHandler *handlers.MasterDataHandler,
	authHandler *handlers.AuthHandler,
	statsHandler *handlers.StatsHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)

	mux.HandleFunc("/api/demands", demandHandler.GetDemands)
	mux.HandleFunc("/api/demands/new", demandHandler.CreateDemand)
	mux.HandleFunc("/api/demands/sweep", demandHandler.SweepExpiredDemands)
	mux.HandleFunc("GET /api/demands/{demandId}", demandHandler.GetDemand)
	mux.HandleFunc("GET /api/demands/{demandId}/status", demandHandler.GetDemandStatus)
	mux.HandleFunc("/api/demands/{demandId}/award", demandHandler.AwardQuote)
	mux.HandleFunc("GET /api/demands/{demandId}/quotes", quoteHandler.GetDemandQuotes)
	mux.HandleFunc("POST /api/demands/{demandId}/quotes/new", quoteHandler.SubmitQuote)

	mux.HandleFunc("/api/quotes/my", quoteHandler.GetMyQuotes)
	mux.HandleFunc("/api/quotes/{quoteId}/abnormal", quoteHandler.FlagAbnormal)

	mux.HandleFunc("/api/orders", orderHandler.GetOrders)
	mux.HandleFunc("GET /api/orders/{orderId}", orderHandler.GetOrder)
	mux.HandleFunc("/api/orders/{orderId}/ship", orderHandler.RecordShipment)
	mux.HandleFunc("/api/orders/{orderId}/receive", orderHandler.ConfirmReceipt)
	mux.HandleFunc("/api/orders/{orderId}/abnormal", orderHandler.FlagAbnormal)

	mux.HandleFunc("/api/suppliers", vendorHandler.GetSuppliers)
	mux.HandleFunc("/api/suppliers/new", vendorHandler.CreateSupplier)
	mux.HandleFunc("PATCH /api/suppliers/{supplierId}", vendorHandler.UpdateSupplier)
	mux.HandleFunc("DELETE /api/suppliers/{supplierId}", vendorHandler.DeleteSupplier)
	mux.HandleFunc("/api/suppliers/{supplierId}/audit", vendorHandler.AuditSupplier)

	mux.HandleFunc("/api/shops", vendorHandler.GetShops)
	mux.HandleFunc("/api/shops/new", vendorHandler.CreateShop)
	mux.HandleFunc("PATCH /api/shops/{shopId}", vendorHandler.UpdateShop)
	mux.HandleFunc("DELETE /api/shops/{shopId}", vendorHandler.DeleteShop)
	mux.HandleFunc("/api/shops/{shopId}/bind-user", vendorHandler.BindShopUser)

	mux.HandleFunc("/api/brands", masterDataHandler.GetBrands)
	mux.HandleFunc("/api/brands/new", masterDataHandler.CreateBrand)
	mux.HandleFunc("PATCH /api/brands/{brandId}", masterDataHandler.UpdateBrand)
	mux.HandleFunc("DELETE /api/brands/{brandId}", masterDataHandler.DeleteBrand)

	mux.HandleFunc("/api/categories/tree", masterDataHandler.GetCategoryTree)
	mux.HandleFunc("/api/categories/new", masterDataHandler.CreateCategory)
	mux.HandleFunc("PATCH /api/categories/{categoryId}", masterDataHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{categoryId}", masterDataHandler.DeleteCategory)

	mux.HandleFunc("/api/users", authHandler.GetUsers)
	mux.HandleFunc("/api/users/{userId}/toggle-status", authHandler.ToggleUserStatus)
	mux.HandleFunc("/api/users/{userId}/reset-password", authHandler.ResetUserPassword)

	mux.HandleFunc("/api/statistics/overview", statsHandler.GetOverview)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
