package phase

import (
	"context"
	"fmt"
	"path"

	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
	"github.com/nacternals/roboshop/pkg/retry"
)

// LoadSchemas loads the database schemas of the services into their
// datastores using the datastore client on the service host.
type LoadSchemas struct {
	GenericPhase

	hosts stack.Hosts
}

// Title for the phase
func (p *LoadSchemas) Title() string {
	return "Load database schemas"
}

// Prepare the phase
func (p *LoadSchemas) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	p.hosts = config.Spec.Hosts.Filter(func(h *stack.Host) bool {
		for _, role := range h.Roles {
			if svc := config.Spec.ServiceForRole(role); svc != nil && svc.SchemaKind != stack.SchemaNone {
				return true
			}
		}
		return false
	})
	return nil
}

// ShouldRun is true when a placed service has a schema
func (p *LoadSchemas) ShouldRun() bool {
	return len(p.hosts) > 0
}

// Run the phase
func (p *LoadSchemas) Run(ctx context.Context) error {
	if err := p.startDatastores(); err != nil {
		return err
	}
	return p.parallelDo(ctx, p.hosts, p.loadSchemas)
}

// startDatastores makes sure the datastore units targeted by the schema
// loads are running. Their units are normally only started later when all
// the services are brought up.
func (p *LoadSchemas) startDatastores() error {
	roles := make(map[string]bool)
	for _, h := range p.hosts {
		for _, role := range h.Roles {
			svc := p.Config.Spec.ServiceForRole(role)
			if svc == nil {
				continue
			}
			switch svc.SchemaKind {
			case stack.SchemaMongoDB:
				roles["mongodb"] = true
			case stack.SchemaMySQL:
				roles["mysql"] = true
			}
		}
	}

	for role := range roles {
		h := p.Config.Spec.Hosts.WithRole(role).First()
		if h == nil {
			return fmt.Errorf("no host carries the %s role", role)
		}
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil {
			return fmt.Errorf("no service for role %s", role)
		}
		if h.Configurer.ServiceIsRunning(h, svc.Unit) {
			continue
		}
		log.Infof("%s: starting %s for schema load", h, svc.Unit)
		if err := h.Configurer.EnableService(h, svc.Unit); err != nil {
			return fmt.Errorf("enable %s: %w", svc.Unit, err)
		}
		if err := h.Configurer.StartService(h, svc.Unit); err != nil {
			return fmt.Errorf("start %s: %w", svc.Unit, err)
		}
	}

	return nil
}

func (p *LoadSchemas) loadSchemas(ctx context.Context, h *stack.Host) error {
	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || svc.SchemaKind == stack.SchemaNone {
			continue
		}
		if err := p.loadSchema(ctx, h, svc); err != nil {
			return fmt.Errorf("load schema for %s: %w", svc.Name, err)
		}
	}
	return nil
}

func (p *LoadSchemas) loadSchema(ctx context.Context, h *stack.Host, svc *stack.Service) error {
	schema := path.Join(svc.Home, svc.SchemaFile)
	if !h.Configurer.FileExist(h, schema) {
		return fmt.Errorf("schema file %s does not exist", schema)
	}

	var cmd string
	switch svc.SchemaKind {
	case stack.SchemaMongoDB:
		addr := p.Config.Spec.RoleAddress("mongodb")
		if addr == "" {
			return fmt.Errorf("no host carries the mongodb role")
		}
		client, err := h.Configurer.MongoClientCommand(h)
		if err != nil {
			return err
		}
		cmd = fmt.Sprintf("%s --host %s < %s", client, shellescape.Quote(addr), shellescape.Quote(schema))
	case stack.SchemaMySQL:
		addr := p.Config.Spec.RoleAddress("mysql")
		if addr == "" {
			return fmt.Errorf("no host carries the mysql role")
		}
		client, err := h.Configurer.MySQLClientCommand(h)
		if err != nil {
			return err
		}
		cmd = fmt.Sprintf("%s -h %s -uroot -proboshop123 < %s", client, shellescape.Quote(addr), shellescape.Quote(schema))
	default:
		return fmt.Errorf("unknown schema kind %q", svc.SchemaKind)
	}

	log.Infof("%s: loading %s schema from %s", h, svc.SchemaKind, schema)
	// the datastore may still be coming up, keep trying for a while
	err := retry.Timeout(ctx, retry.DefaultTimeout, func(_ context.Context) error {
		return h.Exec(cmd, exec.Sudo(h), exec.HideCommand())
	})
	if err != nil {
		return fmt.Errorf("schema load failed: %w", err)
	}
	p.IncProp(svc.SchemaKind)

	return nil
}
