package audit

import "strings"

// ActionResource holds action and resource derived from a gRPC full method name.
type ActionResource struct {
	Action   string
	Resource string
}

// ParseFullMethod returns action and resource for a gRPC full method
// (e.g. /issuehub.issue.v1.IssueService/CreateIssue). Action is a verb: get,
// list, create, update, delete, or the lowercase method name for others.
// Resource is derived from the service name (IssueService -> issue).
func ParseFullMethod(fullMethod string) ActionResource {
	// fullMethod format: /issuehub.package.v1.ServiceName/MethodName
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	method := fullMethod[slash+1:]
	beforeSlash := fullMethod[:slash]
	dot := strings.LastIndex(beforeSlash, ".")
	if dot < 0 {
		return ActionResource{Action: strings.ToLower(method), Resource: "unknown"}
	}
	serviceName := beforeSlash[dot+1:]
	return ActionResource{Action: methodToAction(method), Resource: serviceToResource(serviceName)}
}

func serviceToResource(serviceName string) string {
	// IssueService -> issue, GroupService -> group
	s := strings.TrimSuffix(serviceName, "Service")
	if s == "" {
		return "unknown"
	}
	return strings.ToLower(s[0:1]) + s[1:]
}

func methodToAction(method string) string {
	switch {
	case strings.HasPrefix(method, "Get") && method != "Get":
		return "get"
	case strings.HasPrefix(method, "List"):
		return "list"
	case strings.HasPrefix(method, "Create"):
		return "create"
	case strings.HasPrefix(method, "Update"):
		return "update"
	case strings.HasPrefix(method, "Delete"):
		return "delete"
	case strings.HasPrefix(method, "Add"):
		return "add"
	case strings.HasPrefix(method, "Remove"):
		return "remove"
	case strings.HasPrefix(method, "Assign"):
		return "assign"
	case strings.HasPrefix(method, "Signup"), strings.HasPrefix(method, "Signin"):
		return strings.ToLower(method)
	default:
		return strings.ToLower(method)
	}
}
