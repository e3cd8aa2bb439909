package fakes

import (
	"net/http"
	"slices"
)

// serverAction is the contract of one sub-action of POST /servers/{id}/action.
type serverAction struct {
	// keys lists the required argument keys; nil means the argument must
	// be null.
	keys     []string
	optional []string
	check    func(r *Request, args map[string]any) error
	reply    func() (Status, any)
}

var serverActions = map[string]serverAction{
	"reboot": {
		keys: []string{"type"},
		check: func(r *Request, args map[string]any) error {
			if t, _ := args["type"].(string); t != "HARD" && t != "SOFT" {
				return r.fail("reboot type must be HARD or SOFT, got %v", args["type"])
			}
			return nil
		},
	},
	"rebuild": {
		keys:     []string{"imageRef"},
		optional: []string{"adminPass"},
		reply:    func() (Status, any) { return Code(202), server(0) },
	},
	"resize": {keys: []string{"flavorRef"}},
	"confirmResize": {
		reply: func() (Status, any) { return Code(204), nil },
	},
	"revertResize":     {},
	"migrate":          {},
	"os-stop":          {},
	"os-start":         {},
	"rescue":           {},
	"unrescue":         {},
	"lock":             {},
	"unlock":           {},
	"addFixedIp":       {keys: []string{"networkId"}},
	"removeFixedIp":    {keys: []string{"address"}},
	"addFloatingIp":    {keys: []string{"address"}},
	"removeFloatingIp": {keys: []string{"address"}},
	"createImage": {
		keys: []string{"name", "metadata"},
		reply: func() (Status, any) {
			return Status{Code: 202, Fields: map[string]string{"location": "http://blah/images/456"}}, nil
		},
	},
	"changePassword": {keys: []string{"adminPass"}},
	"os-getConsoleOutput": {
		keys:  []string{"length"},
		reply: func() (Status, any) { return Code(202), fixture("servers/console_output") },
	},
	"os-getVNCConsole":    {keys: []string{"type"}},
	"os-migrateLive":      {keys: []string{"host", "block_migration", "disk_over_commit"}},
	"os-resetState":       {keys: []string{"state"}},
	"addSecurityGroup":    {keys: []string{"name"}},
	"removeSecurityGroup": {keys: []string{"name"}},
	"createBackup":        {keys: []string{"name", "backup_type", "rotation"}},
}

// ServerActions lists the sub-actions accepted by the server action
// endpoint, sorted.
func ServerActions() []string {
	names := make([]string, 0, len(serverActions))
	for name := range serverActions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func registerServerActions(b *builder) {
	b.family = "servers"
	b.handle(http.MethodPost, "/servers/1234/action", postServerAction)
}

// postServerAction multiplexes every server action behind one URL. The
// body must hold exactly one key, the action name.
func postServerAction(r *Request) (Status, any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return Status{}, nil, err
	}
	if len(obj) != 1 {
		return Status{}, nil, r.fail("action body must have exactly one key, got %v", sortedKeys(obj))
	}

	var name string
	var arg any
	for k, v := range obj {
		name, arg = k, v
	}

	action, ok := serverActions[name]
	if !ok {
		return Status{}, nil, r.fail("unexpected server action: %s", name)
	}

	if action.keys == nil {
		if arg != nil {
			return Status{}, nil, r.fail("%s takes no arguments, got %s", name, describe(arg))
		}
	} else {
		args, err := r.object(arg, name)
		if err != nil {
			return Status{}, nil, err
		}
		if err := r.exactKeys(args, name, action.keys, action.optional...); err != nil {
			return Status{}, nil, err
		}
		if action.check != nil {
			if err := action.check(r, args); err != nil {
				return Status{}, nil, err
			}
		}
	}

	if action.reply != nil {
		status, body := action.reply()
		return status, body, nil
	}
	return Code(202), nil, nil
}
