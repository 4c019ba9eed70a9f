// Package fab implements the damascene process tools. Every tool
// mutates the wafer grid in place; none of them keeps state that
// survives a process run except the plater's additive fields.
package fab

import "github.com/edp1096/toy-fab/pkg/wafer"

type Tool interface {
	Name() string
	Wafer() *wafer.Wafer
}

type BaseTool struct {
	name string
	wfr  *wafer.Wafer
}

func NewBaseTool(name string, w *wafer.Wafer) BaseTool {
	return BaseTool{name: name, wfr: w}
}

func (t *BaseTool) Name() string {
	return t.name
}

func (t *BaseTool) Wafer() *wafer.Wafer {
	return t.wfr
}

func (t *BaseTool) Params() wafer.ProcessParameters {
	return t.wfr.Params
}
