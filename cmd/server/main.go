package main

import (
	"flag"
	"fmt"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/managers"
	"github.com/wso2/identity-email-signature-service/internal/system/schedulers"
	"github.com/wso2/identity-email-signature-service/internal/system/workers"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func validateDataSourceConfig(config *config.Config) {
	host := config.DataSource.Hostname
	port := config.DataSource.Port
	user := config.DataSource.Username
	password := config.DataSource.Password
	dbname := config.DataSource.Name

	if host == "" || port == 0 || user == "" || password == "" || dbname == "" {
		stdlog.Fatal("One or more PostgreSQL configuration values are missing")
	}
}

func main() {
	essHome := getESSHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	essConfig, err := config.LoadConfig(essHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load essConfig: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeESSRuntime(essHome, essConfig); err != nil {
		stdlog.Fatalf("Failed to initialize the signature service runtime: %v", err)
	}

	// Initialize logger
	if err := log.Init(essConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize the logger: %v", err)
	}
	logger := log.GetLogger()

	// Validate database configuration
	validateDataSourceConfig(essConfig)

	// Initialize the audit run queue
	workers.StartAuditWorker()

	// Start the periodic signature audit when enabled.
	if essConfig.Audit.ScheduleEnabled {
		interval := time.Duration(essConfig.Audit.ScheduleIntervalMinutes) * time.Minute
		if interval <= 0 {
			interval = time.Hour
		}
		go schedulers.StartAuditScheduler(interval)
	}

	serverAddr := fmt.Sprintf("%s:%d", essConfig.Addr.Host, essConfig.Addr.Port)
	mux := withTraceID(enableCORS(initMultiplexer(), essConfig.Auth.CORSAllowedOrigins))
	logger.Info(fmt.Sprintf("WSO2 ESS starting in: %v", serverAddr))
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start the listener.", log.Error(err))
	}

	logger.Info(fmt.Sprintf("WSO2 ESS started in: %v", serverAddr))

	server := &http.Server{Handler: mux}

	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests.", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	err := serviceManager.RegisterServices(constants.ApiBasePath)
	if err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	return mux
}

// withTraceID stamps every request context with a trace ID so handler logs
// and error responses can be correlated.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := esscontext.WithTraceID(r.Context(), esscontext.GenerateTraceID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", resolveOrigin(r.Header.Get("Origin"), allowedOrigins))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveOrigin echoes the request origin when it is in the configured allow
// list. An empty allow list keeps the permissive default.
func resolveOrigin(origin string, allowedOrigins []string) string {
	if len(allowedOrigins) == 0 {
		return "*"
	}
	for _, allowed := range allowedOrigins {
		if allowed == origin || allowed == "*" {
			return allowed
		}
	}
	return allowedOrigins[0]
}

func getESSHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("essHome", "", "Path to email signature service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
