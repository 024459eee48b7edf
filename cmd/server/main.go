package main

import (
	"log"

	"shopcore-be/internal/cart"
	"shopcore-be/internal/config"
	"shopcore-be/internal/db"
	"shopcore-be/internal/handlers"
	"shopcore-be/internal/logger"
	"shopcore-be/internal/order"
	"shopcore-be/internal/payment"
	"shopcore-be/internal/product"
	"shopcore-be/internal/report"
	"shopcore-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	var orderOpts []order.Option
	if cfg.StrictOrderTransitions {
		orderOpts = append(orderOpts, order.WithStrictTransitions())
	}
	orderSvc := order.NewService(orderRepo, orderOpts...)

	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, orderRepo)

	reportRepo := report.NewRepository(database)
	reportSvc := report.NewService(reportRepo)

	h := handlers.New(userSvc, productSvc, cartSvc, orderSvc, paymentSvc, reportSvc)
	router := handlers.NewRouter(h)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
