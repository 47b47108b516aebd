package configurer

import (
	"github.com/k0sproject/rig/os"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// Configurer is the interface that host OS support modules implement. It
// covers the host-level operations the provisioning phases need: package
// management, file plumbing, service management and schema client commands.
type Configurer interface {
	Kind() string
	CheckPrivilege(os.Host) error
	InstallPackage(os.Host, ...string) error
	PackageIsInstalled(os.Host, string) bool
	PackageManager(os.Host) (pkgman.Installer, error)
	StartService(os.Host, string) error
	StopService(os.Host, string) error
	RestartService(os.Host, string) error
	EnableService(os.Host, string) error
	DisableService(os.Host, string) error
	ServiceIsRunning(os.Host, string) bool
	ServiceScriptPath(string) string
	DaemonReload(os.Host) error
	WriteFile(os.Host, string, string, string) error
	ReadFile(os.Host, string) (string, error)
	FileExist(os.Host, string) bool
	DeleteFile(os.Host, string) error
	CopyFile(os.Host, string, string) error
	MoveFile(os.Host, string, string) error
	MkDir(os.Host, string) error
	Chmod(os.Host, string, string) error
	Chown(os.Host, string, string) error
	CommandExist(os.Host, string) bool
	Hostname(os.Host) string
	MachineID(os.Host) (string, error)
	Arch(os.Host) (string, error)
	Sha256Sum(os.Host, string) (string, error)
	ExtractArchive(os.Host, string, string) error
	UserExists(os.Host, string) bool
	CreateServiceUser(os.Host, string, string) error
	UpdateEnvironment(os.Host, map[string]string) error
	DiskUsagePercent(os.Host, string) (int, error)
	MemoryUsagePercent(os.Host) (int, error)
	MongoClientCommand(os.Host) (string, error)
	MySQLClientCommand(os.Host) (string, error)
}
