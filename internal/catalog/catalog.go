// SPDX-License-Identifier: MPL-2.0

// Package catalog wires the compiled-in module descriptors to their command
// provider factories. It is the single place that knows every module in this
// build; the registry, composer, and CLI stay module-agnostic.
package catalog

import (
	"maxcli/internal/modules/coolifymgr"
	"maxcli/internal/modules/dockermgr"
	"maxcli/internal/modules/gcpmgr"
	"maxcli/internal/modules/k8smgr"
	"maxcli/internal/modules/miscmgr"
	"maxcli/internal/modules/setupmgr"
	"maxcli/internal/modules/sshmgr"
	"maxcli/internal/registry"
)

// DefaultEnabled is the enabled set synthesized on first run. Kept small on
// purpose: everything else is opt-in via `max modules enable`.
var DefaultEnabled = []registry.ModuleName{"ssh_manager", "setup_manager"}

// descriptors is the full catalog. Names are stable persistence keys and must
// never be renamed. Descriptors without a factory below are catalog-only:
// visible in `max modules list` and toggleable, but skipped at composition
// until a provider lands.
var descriptors = []registry.ModuleDescriptor{
	{
		Name:         "ssh_manager",
		Description:  "SSH connection and target management with key generation and profiles",
		Commands:     []string{"ssh"},
		Dependencies: []string{"ssh"},
	},
	{
		Name:         "docker_manager",
		Description:  "Docker container management, image operations, and development environments",
		Commands:     []string{"docker"},
		Dependencies: []string{"docker"},
	},
	{
		Name:         "kubernetes_manager",
		Description:  "Kubernetes context switching and cluster management",
		Commands:     []string{"kctx"},
		Dependencies: []string{"kubectl"},
	},
	{
		Name:         "gcp_manager",
		Description:  "Google Cloud Platform configuration and authentication management",
		Commands:     []string{"gcp"},
		Dependencies: []string{"gcloud"},
	},
	{
		Name:        "coolify_manager",
		Description: "Coolify instance management through REST API",
		Commands:    []string{"coolify"},
	},
	{
		Name:        "setup_manager",
		Description: "Development environment setup and configuration profiles",
		Commands:    []string{"setup"},
	},
	{
		Name:         "misc_manager",
		Description:  "Database backup utilities, CSV data processing, and application deployment tools",
		Commands:     []string{"backup-db", "deploy-app", "process-csv"},
		Dependencies: []string{"pg_dump"},
	},
	{
		Name:         "ssh_backup",
		Description:  "SSH key backup and restore with GPG encryption",
		Commands:     []string{"ssh-backup"},
		Dependencies: []string{"gpg"},
	},
	{
		Name:         "ssh_rsync",
		Description:  "Remote backup synchronization using rsync over SSH",
		Commands:     []string{"rsync-backup"},
		Dependencies: []string{"rsync", "ssh"},
	},
	{
		Name:         "terraform_manager",
		Description:  "Terraform infrastructure management and automation",
		Commands:     []string{"terraform", "tf"},
		Dependencies: []string{"terraform"},
	},
	{
		Name:         "aws_manager",
		Description:  "Amazon Web Services resource management and utilities",
		Commands:     []string{"aws"},
		Dependencies: []string{"aws"},
	},
	{
		Name:         "database_manager",
		Description:  "Database connection management and backup utilities",
		Commands:     []string{"db", "database"},
		Dependencies: []string{"psql"},
	},
	{
		Name:        "monitoring",
		Description: "System monitoring, alerting, and health check utilities",
		Commands:    []string{"monitor", "health"},
	},
	{
		Name:        "deployment",
		Description: "Application deployment automation and CI/CD integration",
		Commands:    []string{"deploy"},
	},
}

// factories maps implemented modules to their provider constructors.
var factories = map[registry.ModuleName]registry.ProviderFactory{
	"ssh_manager":        sshmgr.NewProvider,
	"docker_manager":     dockermgr.NewProvider,
	"kubernetes_manager": k8smgr.NewProvider,
	"gcp_manager":        gcpmgr.NewProvider,
	"coolify_manager":    coolifymgr.NewProvider,
	"setup_manager":      setupmgr.NewProvider,
	"misc_manager":       miscmgr.NewProvider,
}

// Default returns the registry for this build.
func Default() *registry.Registry {
	return registry.New(descriptors, factories)
}
