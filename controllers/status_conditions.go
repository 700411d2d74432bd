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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/ngofficial99/GeneralScaler/api/v1alpha1"
)

// SetReadyCondition sets the single Ready condition on the scaler status.
// LastTransitionTime only advances when the condition status actually flips.
func SetReadyCondition(scaler *v1alpha1.GeneralScaler, status metav1.ConditionStatus, reason, message string) {
	newCondition := metav1.Condition{
		Type:               v1alpha1.ConditionReady,
		Status:             status,
		Reason:             reason,
		Message:            message,
		ObservedGeneration: scaler.Generation,
		LastTransitionTime: metav1.Now(),
	}

	for i, condition := range scaler.Status.Conditions {
		if condition.Type != v1alpha1.ConditionReady {
			continue
		}
		if condition.Status == newCondition.Status {
			newCondition.LastTransitionTime = condition.LastTransitionTime
		}
		scaler.Status.Conditions[i] = newCondition
		return
	}

	scaler.Status.Conditions = append(scaler.Status.Conditions, newCondition)
}

// GetReadyCondition returns the Ready condition, if present
func GetReadyCondition(scaler *v1alpha1.GeneralScaler) (*metav1.Condition, bool) {
	for i := range scaler.Status.Conditions {
		if scaler.Status.Conditions[i].Type == v1alpha1.ConditionReady {
			return &scaler.Status.Conditions[i], true
		}
	}
	return nil, false
}

// IsReady reports whether the scaler currently carries Ready=True
func IsReady(scaler *v1alpha1.GeneralScaler) bool {
	condition, ok := GetReadyCondition(scaler)
	return ok && condition.Status == metav1.ConditionTrue
}
