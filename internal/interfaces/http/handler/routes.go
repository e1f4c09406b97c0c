package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the client endpoints
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/:id", h.Get)
	clients.PUT("/:id", h.Update)
	clients.DELETE("/:id", h.Delete)
}

// RegisterRoutes mounts the supplier endpoints
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.Create)
	suppliers.GET("", h.List)
	suppliers.GET("/:id", h.Get)
	suppliers.PUT("/:id", h.Update)
	suppliers.DELETE("/:id", h.Delete)
}

// RegisterRoutes mounts the car endpoints, including the per-client listing
func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cars := rg.Group("/cars")
	cars.POST("", h.Create)
	cars.GET("", h.List)
	cars.GET("/:uin", h.Get)
	cars.PUT("/:uin", h.Update)
	cars.DELETE("/:uin", h.Delete)

	rg.GET("/clients/:id/cars", h.ListByClient)
}

// RegisterRoutes mounts the insurance endpoints
func (h *InsuranceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	insurance := rg.Group("/insurance")
	insurance.POST("", h.Create)
	insurance.GET("", h.List)
	insurance.GET("/:id", h.Get)
	insurance.POST("/:id/renew", h.Renew)
	insurance.DELETE("/:id", h.Delete)
}

// RegisterRoutes mounts the shop service endpoints
func (h *ShopServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	services.POST("", h.Create)
	services.GET("", h.List)
	services.GET("/:id", h.Get)
	services.PUT("/:id", h.Update)
	services.DELETE("/:id", h.Delete)
}

// RegisterRoutes mounts the product and stock endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/low-stock", h.LowStock)
	products.GET("/:id", h.Get)
	products.PUT("/:id", h.Update)
	products.POST("/:id/restock", h.Restock)
	products.POST("/:id/transfer", h.Transfer)
	products.DELETE("/:id", h.Delete)

	rg.GET("/suppliers/:id/products", h.ListBySupplier)
}

// RegisterRoutes mounts the maintenance request endpoints
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/maintenance")
	requests.POST("", h.Create)
	requests.GET("", h.List)
	requests.GET("/report", h.Report)
	requests.GET("/:id", h.Get)
	requests.PUT("/:id", h.Update)
	requests.POST("/:id/status", h.TransitionStatus)
	requests.POST("/:id/payments", h.MakePayment)
	requests.DELETE("/:id", h.Delete)

	rg.GET("/cars/:uin/maintenance", h.ListByCar)
	rg.GET("/clients/:id/maintenance", h.ListByClient)
}

// RegisterRoutes mounts the employee endpoints
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	employees.POST("", h.Create)
	employees.GET("", h.List)
	employees.GET("/:id", h.Get)
	employees.PUT("/:id", h.Update)
	employees.DELETE("/:id", h.Delete)
}

// RegisterRoutes mounts the payroll endpoints
func (h *SalaryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	salaries := rg.Group("/salaries")
	salaries.POST("", h.Create)
	salaries.GET("/:id", h.Get)
	salaries.POST("/:id/pay", h.Pay)
	salaries.DELETE("/:id", h.Delete)

	rg.GET("/employees/:id/salaries", h.ListByEmployee)
}

// RegisterRoutes mounts the finance endpoints
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	finance.POST("/categories", h.CreateCategory)
	finance.GET("/categories", h.ListCategories)
	finance.DELETE("/categories/:id", h.DeleteCategory)
	finance.POST("/records", h.CreateRecord)
	finance.GET("/records", h.ListRecords)
	finance.PUT("/records/:id", h.UpdateRecord)
	finance.DELETE("/records/:id", h.DeleteRecord)
	finance.GET("/summary", h.Summary)
	finance.GET("/timeseries", h.TimeSeries)
}

// RegisterRoutes mounts the audit log endpoints
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit")
	audit.GET("", h.List)
	audit.GET("/range", h.Range)
	audit.GET("/export", h.ExportCSV)
}

// RegisterRoutes mounts the backup endpoints
func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	backup := rg.Group("/backup")
	backup.GET("/export", h.Export)
	backup.POST("/import", h.Import)
	backup.POST("/archive", h.Archive)
	backup.POST("/restore", h.Restore)
}
