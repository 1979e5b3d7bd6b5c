package detail

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindMessageCreation
	KindToolCalls
)

// Detail is the classified form of a step_details payload. Raw holds the
// pretty-printed payload for KindUnknown.
type Detail struct {
	Kind      Kind
	MessageID string
	Calls     []ToolCall
	Raw       string
}

// At most one of Function and Code is set; both are nil for foreign kinds.
type ToolCall struct {
	ID       string
	Kind     string
	Function *FunctionCall
	Code     *CodeCall
}

// HasOutput distinguishes an empty output from one never recorded.
type FunctionCall struct {
	Name      string
	Arguments string
	Output    string
	HasOutput bool
}

type CodeCall struct {
	Input   string
	Outputs []CodeOutput
}

type CodeOutput struct {
	Logs   string
	FileID string
}

type wireDetails struct {
	Type            string          `json:"type"`
	MessageCreation *wireMessageRef `json:"message_creation"`
	ToolCalls       []wireToolCall  `json:"tool_calls"`
}

type wireMessageRef struct {
	MessageID string `json:"message_id"`
}

type wireToolCall struct {
	ID              string               `json:"id"`
	Type            string               `json:"type"`
	Function        *wireFunction        `json:"function"`
	CodeInterpreter *wireCodeInterpreter `json:"code_interpreter"`
}

type wireFunction struct {
	Name      string  `json:"name"`
	Arguments string  `json:"arguments"`
	Output    *string `json:"output"`
}

type wireCodeInterpreter struct {
	Input   string           `json:"input"`
	Outputs []wireCodeOutput `json:"outputs"`
}

type wireCodeOutput struct {
	Type  string `json:"type"`
	Logs  string `json:"logs"`
	Image *struct {
		FileID string `json:"file_id"`
	} `json:"image"`
}

// Classify never fails; malformed payloads and foreign shapes degrade to
// KindUnknown with the text preserved.
func Classify(raw []byte) Detail {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Detail{Kind: KindUnknown}
	}

	var wire wireDetails
	if err := sonic.Unmarshal(raw, &wire); err != nil {
		return Detail{Kind: KindUnknown, Raw: trimmed}
	}

	switch wire.Type {
	case "message_creation":
		d := Detail{Kind: KindMessageCreation}
		if wire.MessageCreation != nil {
			d.MessageID = wire.MessageCreation.MessageID
		}
		return d
	case "tool_calls":
		calls := make([]ToolCall, 0, len(wire.ToolCalls))
		for _, tc := range wire.ToolCalls {
			calls = append(calls, classifyToolCall(tc))
		}
		return Detail{Kind: KindToolCalls, Calls: calls}
	default:
		return Detail{Kind: KindUnknown, Raw: prettyJSON(raw)}
	}
}

func classifyToolCall(tc wireToolCall) ToolCall {
	call := ToolCall{ID: tc.ID, Kind: tc.Type}
	switch {
	case tc.Function != nil:
		fn := &FunctionCall{
			Name:      tc.Function.Name,
			Arguments: prettyArguments(tc.Function.Arguments),
		}
		if tc.Function.Output != nil {
			fn.Output = *tc.Function.Output
			fn.HasOutput = true
		}
		call.Function = fn
	case tc.CodeInterpreter != nil:
		code := &CodeCall{Input: tc.CodeInterpreter.Input}
		for _, out := range tc.CodeInterpreter.Outputs {
			co := CodeOutput{Logs: out.Logs}
			if out.Image != nil {
				co.FileID = out.Image.FileID
			}
			code.Outputs = append(code.Outputs, co)
		}
		call.Code = code
	}
	return call
}

func BuildMarkdown(d Detail) string {
	var b strings.Builder
	switch d.Kind {
	case KindMessageCreation:
		b.WriteString("## Message\n\n")
		if d.MessageID == "" {
			b.WriteString("_no message id recorded_\n")
		} else {
			b.WriteString("Created message `" + d.MessageID + "`\n")
		}
	case KindToolCalls:
		if len(d.Calls) == 0 {
			b.WriteString("## Tool calls\n\n_empty tool call list_\n")
			break
		}
		for i, call := range d.Calls {
			writeToolCall(&b, i+1, call)
		}
	default:
		b.WriteString("## Details\n\n")
		if strings.TrimSpace(d.Raw) == "" {
			b.WriteString("_no details recorded_\n")
		} else {
			writeFence(&b, "json", d.Raw)
		}
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func writeToolCall(b *strings.Builder, n int, call ToolCall) {
	switch {
	case call.Function != nil:
		name := call.Function.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(b, "## Tool %d: %s\n\n", n, name)
		if call.Function.Arguments != "" {
			b.WriteString("**Arguments**\n\n")
			writeFence(b, "json", call.Function.Arguments)
		}
		b.WriteString("**Output**\n\n")
		if !call.Function.HasOutput {
			b.WriteString("_not recorded_\n\n")
		} else if strings.TrimSpace(call.Function.Output) == "" {
			b.WriteString("_empty_\n\n")
		} else {
			writeFence(b, "text", call.Function.Output)
		}
	case call.Code != nil:
		fmt.Fprintf(b, "## Tool %d: code interpreter\n\n", n)
		if call.Code.Input != "" {
			writeFence(b, "python", call.Code.Input)
		}
		for _, out := range call.Code.Outputs {
			if out.FileID != "" {
				fmt.Fprintf(b, "Image output `%s`\n\n", out.FileID)
				continue
			}
			if out.Logs != "" {
				b.WriteString("**Logs**\n\n")
				writeFence(b, "text", out.Logs)
			}
		}
	default:
		kind := call.Kind
		if kind == "" {
			kind = "unknown"
		}
		fmt.Fprintf(b, "## Tool %d (%s)\n\n", n, kind)
		b.WriteString("_no renderer for this tool kind_\n\n")
	}
}

func writeFence(b *strings.Builder, lang, body string) {
	b.WriteString("```" + lang + "\n")
	b.WriteString(strings.TrimRight(body, "\n") + "\n")
	b.WriteString("```\n\n")
}

func prettyArguments(args string) string {
	trimmed := strings.TrimSpace(args)
	if trimmed == "" {
		return ""
	}
	var v any
	if err := sonic.Unmarshal([]byte(trimmed), &v); err != nil {
		return args
	}
	pretty, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return args
	}
	return string(pretty)
}

func prettyJSON(raw []byte) string {
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return strings.TrimSpace(string(raw))
	}
	pretty, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return string(pretty)
}
