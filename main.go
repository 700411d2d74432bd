// Copyright (C) 2025 GeneralScaler contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/audit"
	"github.com/ngofficial99/GeneralScaler/config"
	"github.com/ngofficial99/GeneralScaler/controllers"
	"github.com/ngofficial99/GeneralScaler/health"
	"github.com/ngofficial99/GeneralScaler/logger"
	"github.com/ngofficial99/GeneralScaler/metrics"
	"github.com/ngofficial99/GeneralScaler/registry"
	"github.com/ngofficial99/GeneralScaler/retry"
	"github.com/ngofficial99/GeneralScaler/workload"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("🚀 GeneralScaler Operator Starting...")
	fmt.Println("========================================")

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// Controller-runtime wants its own structured logger
	zapLog, err := zap.NewProduction()
	if err != nil {
		zapLog, _ = zap.NewDevelopment()
	}
	ctrllog.SetLogger(zapr.NewLogger(zapLog))

	logger.Info("📋 Configuration:")
	logger.Info("   Log Level: %s", cfg.LogLevel)
	if cfg.WatchNamespace == "" {
		logger.Info("   Watch Namespace: all namespaces")
	} else {
		logger.Info("   Watch Namespace: %s", cfg.WatchNamespace)
	}
	logger.Info("   Sync Interval (default): %s", cfg.DefaultSyncInterval)
	logger.Info("   Metric Fetch Timeout: %s", cfg.MetricFetchTimeout)
	logger.Info("   Rate Limiting: QPS=%v, Burst=%v", cfg.QPS, cfg.Burst)
	logger.Info("   Concurrency: MaxConcurrentReconciles=%v", cfg.MaxConcurrentReconciles)

	// No cluster credentials: nothing to run against
	kubeConfig, err := ctrl.GetConfig()
	if err != nil {
		logger.Error("Failed to load Kubernetes configuration: %v", err)
		os.Exit(1)
	}
	kubeConfig.QPS = cfg.QPS
	kubeConfig.Burst = cfg.Burst

	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		logger.Error("Unable to register client-go schemes: %v", err)
		os.Exit(1)
	}
	if err := v1alpha1.AddToScheme(scheme); err != nil {
		logger.Error("Unable to register CRD schemes: %v", err)
		os.Exit(1)
	}

	managerOptions := ctrl.Options{
		Scheme: scheme,
		Metrics: server.Options{
			BindAddress: fmt.Sprintf(":%d", cfg.MetricsPort),
		},
		HealthProbeBindAddress: fmt.Sprintf(":%d", cfg.HealthProbePort),
	}
	if cfg.WatchNamespace != "" {
		managerOptions.Cache = cache.Options{
			DefaultNamespaces: map[string]cache.Config{cfg.WatchNamespace: {}},
		}
	}

	mgr, err := ctrl.NewManager(kubeConfig, managerOptions)
	if err != nil {
		logger.Error("Unable to create manager: %v", err)
		os.Exit(1)
	}

	operatorMetrics := metrics.NewOperatorMetrics()
	healthChecker := health.NewOperatorHealthChecker()
	auditLogger := audit.NewLogger(cfg.AuditEnabled)
	resourceRegistry := registry.New(operatorMetrics)
	retryConfig := retry.DefaultConfig()
	retryConfig.MaxRetries = cfg.MaxRetries
	retryer := retry.New(retryConfig, operatorMetrics)
	adapter := workload.NewAdapter(mgr.GetClient(), retryer)

	reconciler := &controllers.GeneralScalerReconciler{
		Client:    mgr.GetClient(),
		Scheme:    mgr.GetScheme(),
		Config:    cfg,
		Registry:  resourceRegistry,
		Workloads: adapter,
		Metrics:   operatorMetrics,
		Health:    healthChecker,
		Audit:     auditLogger,
	}
	if err := reconciler.SetupWithManager(mgr); err != nil {
		logger.Error("Unable to set up GeneralScaler controller: %v", err)
		os.Exit(1)
	}

	if err := mgr.AddHealthzCheck("operator", healthChecker.Check); err != nil {
		logger.Error("Unable to set up health check: %v", err)
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("ready", healthz.Ping); err != nil {
		logger.Error("Unable to set up ready check: %v", err)
		os.Exit(1)
	}

	logger.Info("✅ GeneralScaler operator initialized")

	ctx := ctrl.SetupSignalHandler()
	if err := mgr.Start(ctx); err != nil {
		logger.Error("Manager exited with error: %v", err)
		resourceRegistry.Close()
		os.Exit(1)
	}

	// Teardown releases every provider's network resources
	resourceRegistry.Close()
	logger.Info("GeneralScaler operator stopped")
}
