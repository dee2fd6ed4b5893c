package audit

import "testing"

func TestParseFullMethod(t *testing.T) {
	tests := []struct {
		fullMethod string
		action     string
		resource   string
	}{
		{"/issuehub.issue.v1.IssueService/CreateIssue", "create", "issue"},
		{"/issuehub.issue.v1.IssueService/ListIssues", "list", "issue"},
		{"/issuehub.group.v1.GroupService/DeleteGroup", "delete", "group"},
		{"/issuehub.group.v1.GroupService/AddMember", "add", "group"},
		{"/issuehub.group.v1.GroupService/RemoveMember", "remove", "group"},
		{"/issuehub.issue.v1.IssueService/AssignIssue", "assign", "issue"},
		{"/issuehub.auth.v1.AuthService/Signin", "signin", "auth"},
		{"/issuehub.project.v1.ProjectService/GetProject", "get", "project"},
		{"no-slash", "unknown", "unknown"},
	}
	for _, tt := range tests {
		got := ParseFullMethod(tt.fullMethod)
		if got.Action != tt.action || got.Resource != tt.resource {
			t.Errorf("ParseFullMethod(%q) = %+v, want action=%q resource=%q",
				tt.fullMethod, got, tt.action, tt.resource)
		}
	}
}
