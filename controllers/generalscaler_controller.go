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

package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
	"github.com/ngofficial99/GeneralScaler/audit"
	"github.com/ngofficial99/GeneralScaler/config"
	"github.com/ngofficial99/GeneralScaler/health"
	"github.com/ngofficial99/GeneralScaler/logger"
	"github.com/ngofficial99/GeneralScaler/metrics"
	"github.com/ngofficial99/GeneralScaler/registry"
	"github.com/ngofficial99/GeneralScaler/scaling"
	"github.com/ngofficial99/GeneralScaler/workload"
)

// GeneralScalerReconciler runs the periodic scaling loop for every
// GeneralScaler resource. controller-runtime serializes reconciles per
// object, so a resource never has two ticks in flight; an overrunning tick
// simply defers the next one.
type GeneralScalerReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	Config    *config.Config
	Registry  *registry.Registry
	Workloads *workload.Adapter
	Metrics   *metrics.OperatorMetrics
	Health    *health.OperatorHealthChecker
	Audit     *audit.Logger
}

// +kubebuilder:rbac:groups=autoscaling.generalscaler.io,resources=generalscalers,verbs=get;list;watch
// +kubebuilder:rbac:groups=autoscaling.generalscaler.io,resources=generalscalers/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;update;patch

// Reconcile runs one tick for the requested resource
func (r *GeneralScalerReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	var scaler v1alpha1.GeneralScaler
	if err := r.Get(ctx, req.NamespacedName, &scaler); err != nil {
		if client.IgnoreNotFound(err) == nil {
			// Resource deleted: retire its provider
			r.Registry.Delete(req.NamespacedName)
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !scaler.DeletionTimestamp.IsZero() {
		r.Registry.Delete(req.NamespacedName)
		return ctrl.Result{}, nil
	}

	interval := r.Config.SyncInterval(scaler.Spec.SyncIntervalSeconds)

	entry, err := r.Registry.Upsert(req.NamespacedName, scaler.Spec)
	if err != nil {
		logger.Warn("Rejected registration for %s: %v", req.NamespacedName, err)
		SetReadyCondition(&scaler, metav1.ConditionFalse, v1alpha1.ReasonInvalidSpec, err.Error())
		r.updateStatus(ctx, &scaler)
		// Invalid until the user edits the resource; keep observing anyway
		return ctrl.Result{RequeueAfter: interval}, nil
	}

	r.tick(ctx, &scaler, entry, interval)
	r.updateStatus(ctx, &scaler)

	return ctrl.Result{RequeueAfter: interval}, nil
}

// tick executes fetch-metric, compute-policy, decide-safety, commit for one
// resource. Failures never propagate out: every outcome lands on the Ready
// condition, and a transient error leaves the loop intact for the next tick.
func (r *GeneralScalerReconciler) tick(ctx context.Context, scaler *v1alpha1.GeneralScaler, entry *registry.Entry, interval time.Duration) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Panic in tick for %s/%s: %v", scaler.Namespace, scaler.Name, rec)
			SetReadyCondition(scaler, metav1.ConditionFalse, v1alpha1.ReasonReconciliationError,
				fmt.Sprintf("unexpected error: %v", rec))
		}
	}()

	r.Metrics.RecordTick()

	// Workload API calls inherit a per-tick deadline just short of the
	// sync interval so an overrun cannot bleed into the next tick.
	tickCtx, cancel := context.WithTimeout(ctx, tickDeadline(interval))
	defer cancel()

	spec := entry.Spec
	namespace := scaler.Namespace
	target := spec.TargetRef.Name

	current, err := r.Workloads.ReadReplicas(tickCtx, namespace, target)
	if err != nil {
		if errors.Is(err, workload.ErrNotFound) {
			logger.Warn("Deployment %s/%s not found for scaler %s", namespace, target, scaler.Name)
		} else {
			logger.Error("Failed to read replicas of %s/%s: %v", namespace, target, err)
		}
		SetReadyCondition(scaler, metav1.ConditionFalse, v1alpha1.ReasonDeploymentNotFound,
			fmt.Sprintf("failed to get deployment %s", target))
		r.Metrics.RecordTickSkipped(namespace, scaler.Name, "deployment-not-found")
		return
	}

	fetchCtx, cancelFetch := context.WithTimeout(tickCtx, r.Config.MetricFetchTimeout)
	fetchStart := time.Now()
	metricValue, err := entry.Provider.Fetch(fetchCtx)
	cancelFetch()
	r.Metrics.ObserveMetricFetch(spec.Metric.Type, time.Since(fetchStart))
	if err != nil {
		logger.Warn("Metric fetch failed for %s/%s: %v", namespace, scaler.Name, err)
		SetReadyCondition(scaler, metav1.ConditionFalse, v1alpha1.ReasonMetricFetchFailed,
			"failed to fetch metric value")
		r.Metrics.RecordMetricFetchFailure(spec.Metric.Type)
		r.Metrics.RecordTickSkipped(namespace, scaler.Name, "metric-unavailable")
		return
	}

	policyDesired := entry.Policy.Compute(
		current, metricValue, spec.Metric.TargetValue, spec.MinReplicas, spec.MaxReplicas)

	logger.Debug("Tick %s/%s: current=%d metric=%.2f target=%.2f policyDesired=%d",
		namespace, scaler.Name, current, metricValue, spec.Metric.TargetValue, policyDesired)

	now := time.Now()
	decision := scaling.Decide(scaling.Inputs{
		Current:       current,
		PolicyDesired: policyDesired,
		Min:           spec.MinReplicas,
		Max:           spec.MaxReplicas,
		Behavior:      spec.Behavior,
		LastScaleAt:   entry.LastScaleAt,
		Now:           now,
	}, r.Config)

	checkTime := metav1.NewTime(now)
	scaler.Status.CurrentReplicas = current
	scaler.Status.DesiredReplicas = decision.TargetReplicas
	scaler.Status.CurrentMetricValue = metricValue
	scaler.Status.LastMetricCheckTime = &checkTime

	if !decision.ShouldScale {
		logger.Debug("No scaling needed for %s/%s: %s", namespace, scaler.Name, decision.Reason)
		SetReadyCondition(scaler, metav1.ConditionTrue, v1alpha1.ReasonNoScalingNeeded, decision.Reason)
		r.Metrics.RecordTickSkipped(namespace, scaler.Name, "no-scaling-needed")
		return
	}

	logger.Info("Scaling %s/%s: %s", namespace, target, decision.Reason)
	if err := r.Workloads.SetReplicas(tickCtx, namespace, target, decision.TargetReplicas); err != nil {
		logger.Error("Scale of %s/%s failed: %v", namespace, target, err)
		SetReadyCondition(scaler, metav1.ConditionFalse, v1alpha1.ReasonScalingFailed,
			"failed to scale deployment")
		r.Metrics.RecordScaleFailure(namespace, scaler.Name)
		r.Health.UpdateComponentStatus("workload-api", false, err.Error())
		r.Audit.Record(audit.Event{
			Namespace:    namespace,
			ResourceName: scaler.Name,
			Workload:     target,
			FromReplicas: current,
			ToReplicas:   decision.TargetReplicas,
			Direction:    string(decision.Direction),
			Reason:       decision.Reason,
			Status:       "failed",
			Error:        err.Error(),
		})
		return
	}

	scaleTime := metav1.NewTime(now)
	scaler.Status.LastScaleTime = &scaleTime
	r.Registry.MarkScaled(client.ObjectKeyFromObject(scaler), entry, decision.Direction, now)
	SetReadyCondition(scaler, metav1.ConditionTrue, v1alpha1.ReasonScalingSucceeded, decision.Reason)
	r.Metrics.RecordScale(namespace, scaler.Name, string(decision.Direction))
	r.Health.UpdateComponentStatus("workload-api", true, "Workload API reachable")
	r.Audit.Record(audit.Event{
		Namespace:    namespace,
		ResourceName: scaler.Name,
		Workload:     target,
		FromReplicas: current,
		ToReplicas:   decision.TargetReplicas,
		Direction:    string(decision.Direction),
		Reason:       decision.Reason,
		Status:       "success",
	})
}

// updateStatus persists the status subresource; a failed write only logs,
// the next tick rewrites it anyway
func (r *GeneralScalerReconciler) updateStatus(ctx context.Context, scaler *v1alpha1.GeneralScaler) {
	if err := r.Status().Update(ctx, scaler); err != nil {
		logger.Warn("Failed to update status of %s/%s: %v", scaler.Namespace, scaler.Name, err)
	}
}

// tickDeadline leaves one second of headroom before the next tick; intervals
// of two seconds or less get the full interval
func tickDeadline(interval time.Duration) time.Duration {
	if interval > 2*time.Second {
		return interval - time.Second
	}
	return interval
}

// SetupWithManager sets up the controller with the Manager
func (r *GeneralScalerReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.GeneralScaler{}).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: r.Config.MaxConcurrentReconciles,
		}).
		Complete(r)
}
