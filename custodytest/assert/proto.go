package assert

import (
	"io/ioutil"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	protoMessage = regexp.MustCompile(`(?m)^message (\w+) \{`)
	protoField   = regexp.MustCompile(`^\s*(?:repeated\s+)?[\w.]+\s+(\w+)\s*=\s*(\d+)`)
)

// ProtoLayout fails the test unless the protobuf tags of model declare the
// same field names and numbers as the message of that name in the given
// .proto file.
func ProtoLayout(t Tester, protoFile, message string, model interface{}) {
	t.Helper()

	raw, err := ioutil.ReadFile(protoFile)
	if err != nil {
		t.Fatalf("cannot read %s: %s", protoFile, err)
	}
	declared, ok := protoFields(string(raw), message)
	if !ok {
		t.Fatalf("message %s not declared in %s", message, protoFile)
	}

	tp := reflect.TypeOf(model)
	for tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	tagged := make(map[string]int)
	for i := 0; i < tp.NumField(); i++ {
		tag := tp.Field(i).Tag.Get("protobuf")
		if tag == "" {
			continue
		}
		var name string
		parts := strings.Split(tag, ",")
		for _, p := range parts {
			if strings.HasPrefix(p, "name=") {
				name = strings.TrimPrefix(p, "name=")
			}
		}
		num, err := strconv.Atoi(parts[1])
		if err != nil {
			t.Fatalf("%s.%s: invalid tag %q", tp.Name(), tp.Field(i).Name, tag)
		}
		tagged[name] = num
	}

	if !reflect.DeepEqual(declared, tagged) {
		t.Fatalf("%s layout differs from %s\ndeclared: %v\n  tagged: %v", tp.Name(), protoFile, declared, tagged)
	}
}

// protoFields returns the field numbers by name of a top level message.
func protoFields(src, message string) (map[string]int, bool) {
	for _, loc := range protoMessage.FindAllStringSubmatchIndex(src, -1) {
		if src[loc[2]:loc[3]] != message {
			continue
		}
		fields := make(map[string]int)
		for _, line := range strings.Split(src[loc[1]:], "\n") {
			line = strings.TrimSpace(line)
			if line == "}" {
				return fields, true
			}
			if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "option") || strings.HasPrefix(line, "reserved") {
				continue
			}
			if m := protoField.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[2])
				fields[m[1]] = n
			}
		}
		return fields, true
	}
	return nil, false
}
