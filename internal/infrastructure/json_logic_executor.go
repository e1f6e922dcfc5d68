package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/shopspring/decimal"
)

type CustomOperator func(args ...interface{}) interface{}

// JsonLogicExecutor evaluates JsonLogic rules. Custom operators may appear anywhere in a rule;
// they are evaluated against the root data before the rule is handed to jsonlogic.
type JsonLogicExecutor struct {
	customOps map[string]CustomOperator
}

func NewJsonLogicExecutor() *JsonLogicExecutor {
	return &JsonLogicExecutor{
		customOps: make(map[string]CustomOperator),
	}
}

// NewGuardExecutor returns an executor with the operators checkout guard packs use.
func NewGuardExecutor() *JsonLogicExecutor {
	j := NewJsonLogicExecutor()
	j.RegisterCustomOperator("round", CustomRound)
	j.RegisterCustomOperator("percent", CustomPercent)
	return j
}

func (j *JsonLogicExecutor) RegisterCustomOperator(name string, logic func(args ...interface{}) interface{}) {
	j.customOps[name] = logic
}

func (j *JsonLogicExecutor) Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	expanded, err := j.expand(ctx, ruleData, contextVars)
	if err != nil {
		return nil, err
	}
	rule, ok := expanded.(map[string]interface{})
	if !ok {
		// the whole rule was a custom operator
		return expanded, nil
	}

	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: encode rule: %v", domain.ErrRuleExecutionFailed, err)
	}
	dataJSON, err := json.Marshal(contextVars)
	if err != nil {
		return nil, fmt.Errorf("%w: encode data: %v", domain.ErrRuleExecutionFailed, err)
	}

	var resultBuffer bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &resultBuffer); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRuleExecutionFailed, err)
	}

	out := bytes.TrimSpace(resultBuffer.Bytes())
	if len(out) == 0 || string(out) == "null" {
		return nil, nil
	}

	var res interface{}
	decoder := json.NewDecoder(bytes.NewReader(out))
	decoder.UseNumber()
	if err := decoder.Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", domain.ErrRuleExecutionFailed, err)
	}
	return finalizeValue(res), nil
}

// expand replaces every custom operator node with its value.
func (j *JsonLogicExecutor) expand(ctx context.Context, node interface{}, data map[string]interface{}) (interface{}, error) {
	switch v := node.(type) {
	case map[string]interface{}:
		if len(v) == 1 {
			for opName, args := range v {
				if fn, ok := j.customOps[opName]; ok {
					params, err := j.evalArgs(ctx, args, data)
					if err != nil {
						return nil, err
					}
					return fn(params...), nil
				}
			}
		}
		out := make(map[string]interface{}, len(v))
		for k, child := range v {
			e, err := j.expand(ctx, child, data)
			if err != nil {
				return nil, err
			}
			out[k] = e
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, child := range v {
			e, err := j.expand(ctx, child, data)
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	}
	return node, nil
}

func (j *JsonLogicExecutor) evalArgs(ctx context.Context, args interface{}, data map[string]interface{}) ([]interface{}, error) {
	list, ok := args.([]interface{})
	if !ok {
		list = []interface{}{args}
	}
	params := make([]interface{}, 0, len(list))
	for _, item := range list {
		subRule, isRule := item.(map[string]interface{})
		if !isRule {
			params = append(params, item)
			continue
		}
		res, err := j.Execute(ctx, subRule, data)
		if err != nil {
			return nil, err
		}
		params = append(params, res)
	}
	return params, nil
}

func finalizeValue(val interface{}) interface{} {
	if n, ok := val.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return val
}

// CustomRound rounds half away from zero: {"round": [value, precision]}. Precision defaults to 0.
func CustomRound(args ...interface{}) interface{} {
	if len(args) == 0 {
		return 0.0
	}
	val, _ := anyToFloat(args[0])
	var precision int32
	if len(args) > 1 {
		if p, ok := anyToFloat(args[1]); ok {
			precision = int32(p)
		}
	}
	return decimal.NewFromFloat(val).Round(precision).InexactFloat64()
}

// CustomPercent returns value*pct/100: {"percent": [value, pct]}.
func CustomPercent(args ...interface{}) interface{} {
	if len(args) < 2 {
		return 0.0
	}
	val, _ := anyToFloat(args[0])
	pct, _ := anyToFloat(args[1])
	return decimal.NewFromFloat(val).Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)).InexactFloat64()
}

func anyToFloat(i interface{}) (float64, bool) {
	switch v := i.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
