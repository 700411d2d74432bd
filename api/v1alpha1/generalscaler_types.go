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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Condition reasons reported on the Ready condition. This is a closed set;
// consumers (dashboards, alerts) match on these strings.
const (
	ReasonScalingSucceeded    = "ScalingSucceeded"
	ReasonScalingFailed       = "ScalingFailed"
	ReasonNoScalingNeeded     = "NoScalingNeeded"
	ReasonDeploymentNotFound  = "DeploymentNotFound"
	ReasonMetricFetchFailed   = "MetricFetchFailed"
	ReasonReconciliationError = "ReconciliationError"
	ReasonInvalidSpec         = "InvalidSpec"
)

// ConditionReady is the single condition type maintained on a GeneralScaler.
const ConditionReady = "Ready"

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=gs
// +kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.targetRef.name`
// +kubebuilder:printcolumn:name="Min",type=integer,JSONPath=`.spec.minReplicas`
// +kubebuilder:printcolumn:name="Max",type=integer,JSONPath=`.spec.maxReplicas`
// +kubebuilder:printcolumn:name="Current",type=integer,JSONPath=`.status.currentReplicas`
// +kubebuilder:printcolumn:name="Desired",type=integer,JSONPath=`.status.desiredReplicas`
// +kubebuilder:printcolumn:name="Metric",type=string,JSONPath=`.spec.metric.type`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// GeneralScaler is the Schema for the generalscalers API
type GeneralScaler struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GeneralScalerSpec   `json:"spec,omitempty"`
	Status GeneralScalerStatus `json:"status,omitempty"`
}

// GeneralScalerSpec defines the desired state of GeneralScaler
type GeneralScalerSpec struct {
	// TargetRef identifies the workload to scale
	TargetRef TargetReference `json:"targetRef"`

	// MinReplicas is the lower bound for the replica count
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	MinReplicas int32 `json:"minReplicas,omitempty"`

	// MaxReplicas is the upper bound for the replica count
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=100
	// +kubebuilder:default=10
	MaxReplicas int32 `json:"maxReplicas,omitempty"`

	// Metric describes the external metric driving scaling decisions
	Metric MetricSpec `json:"metric"`

	// Policy selects how the metric is translated into a replica count
	Policy PolicySpec `json:"policy,omitempty"`

	// Behavior tunes cooldowns and per-tick rate limits
	Behavior BehaviorSpec `json:"behavior,omitempty"`

	// SyncIntervalSeconds is the reconciliation interval
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=30
	SyncIntervalSeconds int32 `json:"syncIntervalSeconds,omitempty"`
}

// TargetReference identifies the scaled workload
type TargetReference struct {
	// APIVersion of the target resource
	// +kubebuilder:default="apps/v1"
	APIVersion string `json:"apiVersion,omitempty"`

	// Kind of the target resource
	// +kubebuilder:validation:Enum=Deployment
	// +kubebuilder:default=Deployment
	Kind string `json:"kind,omitempty"`

	// Name of the target resource
	Name string `json:"name"`
}

// MetricSpec selects a metric source and its target value
type MetricSpec struct {
	// Type of the metric source
	// +kubebuilder:validation:Enum=prometheus;redis;pubsub
	Type string `json:"type"`

	// TargetValue is the metric value one replica-set of the workload
	// should be held at
	TargetValue float64 `json:"targetValue"`

	// Prometheus configuration, used when type is "prometheus"
	Prometheus *PrometheusMetricSource `json:"prometheus,omitempty"`

	// Redis configuration, used when type is "redis"
	Redis *RedisMetricSource `json:"redis,omitempty"`

	// PubSub configuration, used when type is "pubsub"
	PubSub *PubSubMetricSource `json:"pubsub,omitempty"`
}

// PrometheusMetricSource configures an instant query against a Prometheus server
type PrometheusMetricSource struct {
	// ServerURL is the base URL of the Prometheus server
	ServerURL string `json:"serverUrl"`

	// Query is the PromQL instant query; the first sample of the result is used
	Query string `json:"query"`

	// Headers are added to every query request
	Headers map[string]string `json:"headers,omitempty"`
}

// RedisMetricSource configures queue-depth inspection of a Redis key
type RedisMetricSource struct {
	// Host of the Redis server
	Host string `json:"host"`

	// Port of the Redis server
	// +kubebuilder:default=6379
	Port int32 `json:"port,omitempty"`

	// DB is the Redis database number
	// +kubebuilder:default=0
	DB int32 `json:"db,omitempty"`

	// Password for the Redis server
	Password string `json:"password,omitempty"`

	// QueueName is the key inspected; list length or sorted-set cardinality
	QueueName string `json:"queueName"`
}

// PubSubMetricSource configures backlog inspection of a Pub/Sub subscription
type PubSubMetricSource struct {
	// ProjectID is the GCP project owning the subscription
	ProjectID string `json:"projectId"`

	// SubscriptionID is the subscription whose undelivered message count is read
	SubscriptionID string `json:"subscriptionId"`

	// CredentialsPath points at a service-account key file; default
	// credentials are used when empty
	CredentialsPath string `json:"credentialsPath,omitempty"`
}

// PolicySpec selects a scaling policy
type PolicySpec struct {
	// Type of the policy; unknown or empty falls back to "slo" with defaults
	// +kubebuilder:validation:Enum=slo;costaware
	Type string `json:"type,omitempty"`

	// SLO policy configuration
	SLO *SLOPolicyConfig `json:"slo,omitempty"`

	// CostAware policy configuration
	CostAware *CostAwarePolicyConfig `json:"costAware,omitempty"`
}

// SLOPolicyConfig tunes the SLO policy
type SLOPolicyConfig struct {
	// TargetLatencyMs is the latency objective in milliseconds
	// +kubebuilder:default=100
	TargetLatencyMs *float64 `json:"targetLatencyMs,omitempty"`

	// TargetErrorRate is the error-rate objective in [0, 1]
	TargetErrorRate *float64 `json:"targetErrorRate,omitempty"`

	// SLOViolationMultiplier amplifies scale-up when the metric exceeds target
	// +kubebuilder:default=1.5
	SLOViolationMultiplier *float64 `json:"sloViolationMultiplier,omitempty"`
}

// CostAwarePolicyConfig tunes the cost-aware policy
type CostAwarePolicyConfig struct {
	// MaxMonthlyCost is the budget ceiling in USD; unset means unlimited
	MaxMonthlyCost *float64 `json:"maxMonthlyCost,omitempty"`

	// CostPerPodPerHour is the hourly cost of one replica in USD
	CostPerPodPerHour float64 `json:"costPerPodPerHour,omitempty"`

	// PreferredScaleDirection weights up/down scaling
	// +kubebuilder:validation:Enum=up;down;balanced
	// +kubebuilder:default=balanced
	PreferredScaleDirection string `json:"preferredScaleDirection,omitempty"`
}

// BehaviorSpec tunes scaling behavior per direction
type BehaviorSpec struct {
	// ScaleUp behavior
	ScaleUp *ScaleUpBehavior `json:"scaleUp,omitempty"`

	// ScaleDown behavior
	ScaleDown *ScaleDownBehavior `json:"scaleDown,omitempty"`
}

// ScaleUpBehavior bounds upward scaling
type ScaleUpBehavior struct {
	// CooldownSeconds after a scale before the next scale up is permitted
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=60
	CooldownSeconds *int32 `json:"cooldownSeconds,omitempty"`

	// MaxIncrement caps replicas added in one tick
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=5
	MaxIncrement *int32 `json:"maxIncrement,omitempty"`
}

// ScaleDownBehavior bounds downward scaling
type ScaleDownBehavior struct {
	// CooldownSeconds after a scale before the next scale down is permitted
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=300
	CooldownSeconds *int32 `json:"cooldownSeconds,omitempty"`

	// MaxDecrement caps replicas removed in one tick
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=2
	MaxDecrement *int32 `json:"maxDecrement,omitempty"`
}

// GeneralScalerStatus defines the observed state of GeneralScaler
type GeneralScalerStatus struct {
	// CurrentReplicas the workload reported at the start of the last tick
	CurrentReplicas int32 `json:"currentReplicas,omitempty"`

	// DesiredReplicas the controller committed (or current when no action)
	DesiredReplicas int32 `json:"desiredReplicas,omitempty"`

	// CurrentMetricValue observed at the last metric check
	CurrentMetricValue float64 `json:"currentMetricValue,omitempty"`

	// LastMetricCheckTime when the metric was last fetched successfully
	LastMetricCheckTime *metav1.Time `json:"lastMetricCheckTime,omitempty"`

	// LastScaleTime when the workload was last scaled by this controller
	LastScaleTime *metav1.Time `json:"lastScaleTime,omitempty"`

	// Conditions holds the single Ready condition
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true

// GeneralScalerList contains a list of GeneralScaler
type GeneralScalerList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GeneralScaler `json:"items"`
}

func init() {
	SchemeBuilder.Register(&GeneralScaler{}, &GeneralScalerList{})
}
