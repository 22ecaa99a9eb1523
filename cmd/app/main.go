package main

import (
	"fmt"
	"os"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/config"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/screens"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/shell"
)

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	dbManager, err := database.NewManager(database.NewConfig(appConfig.DBPath))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	supplierService := services.NewSupplierService(db)
	expenseService := services.NewExpenseService(db)
	inventoryService := services.NewInventoryService(db)
	saleService := services.NewSaleService(db)
	purchaseService := services.NewPurchaseService(db)
	reportService := services.NewReportService(dbManager.Gateway())
	dashboardService := services.NewDashboardService(dbManager.Gateway())

	// Carts live for the whole session so switching screens keeps them.
	saleCart := cart.New(cart.KindSale)
	purchaseCart := cart.New(cart.KindPurchase)

	term := shell.NewTerminal(os.Stdin, os.Stdout)
	nav := screens.NewNavigator(term)

	nav.Register("dashboard", func() screens.Screen { return screens.NewDashboardScreen(dashboardService) })
	nav.Register("categories", func() screens.Screen { return screens.NewCategoryScreen(categoryService, term) })
	nav.Register("products", func() screens.Screen {
		return screens.NewProductScreen(productService, categoryService, term)
	})
	nav.Register("suppliers", func() screens.Screen { return screens.NewSupplierScreen(supplierService, term) })
	nav.Register("expenses", func() screens.Screen { return screens.NewExpenseScreen(expenseService, term) })
	nav.Register("inventory", func() screens.Screen { return screens.NewInventoryScreen(inventoryService) })
	nav.Register("sales", func() screens.Screen {
		return screens.NewSaleScreen(saleService, productService, saleCart, term, screens.ReceiptOptions{
			Dir:       appConfig.ReceiptDir,
			StoreName: appConfig.StoreName,
		})
	})
	nav.Register("purchases", func() screens.Screen {
		return screens.NewPurchaseScreen(purchaseService, productService, supplierService, purchaseCart, term)
	})
	nav.Register("reports", func() screens.Screen { return screens.NewReportScreen(reportService, term, appConfig.ExportDir) })
	nav.Register("about", func() screens.Screen {
		return screens.NewAboutScreen(screens.AppInfo{
			Name:      "Supermarket Management System",
			Version:   appConfig.Version,
			StoreName: appConfig.StoreName,
			DBPath:    dbManager.Path(),
		})
	})

	log.Infow("Supermarket Management System ready", "version", appConfig.Version, "db", dbManager.Path())
	fmt.Fprintf(os.Stdout, "%s, version %s. Type help for commands.\n", appConfig.StoreName, appConfig.Version)

	return shell.New(nav, term, os.Stdout).Run("dashboard")
}
