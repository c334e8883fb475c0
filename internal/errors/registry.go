package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryRender,
		Message:  "Component render panicked",
		Detail:   "A component's Render method panicked. Implement DidCatch to turn the component into an error boundary.",
		DocURL:   "https://vtree.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryRender,
		Message:  "Initial props loader failed",
		Detail:   "The loader of an async component returned an error. The component keeps its current props.",
		DocURL:   "https://vtree.dev/docs/errors/E101",
	},

	// ============================================
	// Patch Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryPatch,
		Message:  "Host node has no parent",
		Detail:   "The reconciler needed to replace a node in its parent, but the node is detached. Mount onto a node that lives inside a container.",
		DocURL:   "https://vtree.dev/docs/errors/E110",
	},
	"E111": {
		Category: CategoryPatch,
		Message:  "Missing host node",
		Detail:   "A non-empty tree was patched against a nil host node.",
		DocURL:   "https://vtree.dev/docs/errors/E111",
	},
	"E112": {
		Category: CategoryPatch,
		Message:  "Unsupported node",
		Detail:   "The tree contains a node kind the reconciler cannot apply, such as a foreign value that is not a host node.",
		DocURL:   "https://vtree.dev/docs/errors/E112",
	},
	"E113": {
		Category: CategoryPatch,
		Message:  "Patch panicked",
		Detail:   "Applying a rendered tree panicked, usually inside a nested component's lifecycle hook or the host implementation.",
		DocURL:   "https://vtree.dev/docs/errors/E113",
	},

	// ============================================
	// Lifecycle Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryLifecycle,
		Message:  "Component is unmounted",
		Detail:   "A lifecycle operation was called on an instance after Unmount. Instances are never re-entered.",
		DocURL:   "https://vtree.dev/docs/errors/E130",
	},
	"E131": {
		Category: CategoryLifecycle,
		Message:  "Component is already mounted",
		Detail:   "Mount was called twice on the same instance. Create a new instance instead.",
		DocURL:   "https://vtree.dev/docs/errors/E131",
	},

	// ============================================
	// Configuration Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The vtree.json or vtree.yaml configuration file is malformed.",
		DocURL:   "https://vtree.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or not one of the allowed values.",
		DocURL:   "https://vtree.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A VTREE_* environment variable could not be parsed.",
		DocURL:   "https://vtree.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo tree is not registered.",
		DocURL:   "https://vtree.dev/docs/errors/E150",
	},
	"E151": {
		Category: CategoryCLI,
		Message:  "Preview server failed",
		Detail:   "The preview server stopped with an error.",
		DocURL:   "https://vtree.dev/docs/errors/E151",
	},
	"E152": {
		Category: CategoryCLI,
		Message:  "Command failed",
		Detail:   "The command stopped with an error that has no more specific code.",
		DocURL:   "https://vtree.dev/docs/errors/E152",
	},

	// ============================================
	// Export Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryExport,
		Message:  "Invalid export target",
		Detail:   "Export targets are local paths or s3://bucket/key URLs.",
		DocURL:   "https://vtree.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryExport,
		Message:  "Export write failed",
		Detail:   "The rendered output could not be written to the export target.",
		DocURL:   "https://vtree.dev/docs/errors/E161",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
