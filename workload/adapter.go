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

// Package workload reads and writes the replica count of the scaled
// Deployment through the orchestrator API.
package workload

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	opererrors "github.com/ngofficial99/GeneralScaler/errors"
	"github.com/ngofficial99/GeneralScaler/logger"
	"github.com/ngofficial99/GeneralScaler/retry"
)

// ErrNotFound is returned by ReadReplicas when the target Deployment does
// not exist; the reconciler maps it to the DeploymentNotFound condition.
var ErrNotFound = opererrors.New(opererrors.CategoryAPI, "workload", "deployment not found")

// Adapter performs replica reads and writes for Deployments
type Adapter struct {
	client  client.Client
	retryer *retry.Retryer
}

// NewAdapter creates a workload adapter
func NewAdapter(c client.Client, retryer *retry.Retryer) *Adapter {
	return &Adapter{client: c, retryer: retryer}
}

// ReadReplicas returns the current spec replica count of the Deployment.
// Returns ErrNotFound when the Deployment is absent.
func (a *Adapter) ReadReplicas(ctx context.Context, namespace, name string) (int32, error) {
	var deployment appsv1.Deployment
	key := types.NamespacedName{Namespace: namespace, Name: name}

	if err := a.client.Get(ctx, key, &deployment); err != nil {
		if apierrors.IsNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, opererrors.Wrapf(err, opererrors.CategoryAPI, "ReadReplicas",
			"failed to get deployment %s/%s", namespace, name)
	}

	if deployment.Spec.Replicas == nil {
		// Unset replicas defaults to 1 in the apps/v1 API
		return 1, nil
	}
	return *deployment.Spec.Replicas, nil
}

// SetReplicas scales the Deployment to target. Already being at target is a
// no-op success. Update conflicts are retried with a fresh read.
func (a *Adapter) SetReplicas(ctx context.Context, namespace, name string, target int32) error {
	key := types.NamespacedName{Namespace: namespace, Name: name}

	op := func(ctx context.Context) error {
		var deployment appsv1.Deployment
		if err := a.client.Get(ctx, key, &deployment); err != nil {
			if apierrors.IsNotFound(err) {
				return retry.NewRetryableError(ErrNotFound, false)
			}
			return err
		}

		if deployment.Spec.Replicas != nil && *deployment.Spec.Replicas == target {
			logger.Debug("Deployment %s/%s already has %d replicas", namespace, name, target)
			return nil
		}

		previous := int32(1)
		if deployment.Spec.Replicas != nil {
			previous = *deployment.Spec.Replicas
		}

		deployment.Spec.Replicas = &target
		if err := a.client.Update(ctx, &deployment); err != nil {
			if apierrors.IsConflict(err) {
				return retry.NewRetryableError(err, true)
			}
			return retry.NewRetryableError(err, false)
		}

		logger.Info("Scaled deployment %s/%s from %d to %d replicas", namespace, name, previous, target)
		return nil
	}

	if err := a.retryer.DoWithContext(ctx, "set-replicas", op); err != nil {
		return opererrors.Wrapf(err, opererrors.CategoryAPI, "SetReplicas",
			"failed to scale deployment %s/%s to %d", namespace, name, target)
	}
	return nil
}
