package graph

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/ZamarianPatrick/oasis-backend/api"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/model"
	json "github.com/goccy/go-json"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphqls
var sourceData string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: sourceData})

var errIntrospection = errors.New("introspection disabled")

type ResolverRoot interface {
	Mutation() MutationResolver
	Query() QueryResolver
	Subscription() SubscriptionResolver
}

type MutationResolver interface {
	Replace(ctx context.Context, input model.ReplaceInput) (*garden.Result, error)
	Water(ctx context.Context, amount int) (*model.Plant, error)
	Rename(ctx context.Context, nickname string) (*model.Plant, error)
}

type QueryResolver interface {
	Catalog(ctx context.Context) ([]api.Offering, error)
	CurrentPlant(ctx context.Context) (*model.Plant, error)
	History(ctx context.Context) ([]*model.Plant, error)
}

type SubscriptionResolver interface {
	PlantChanged(ctx context.Context) (<-chan garden.Event, error)
}

type Config struct {
	Resolvers ResolverRoot
}

// NewExecutableSchema resolves root fields through the resolvers and
// projects the results onto the requested selection sets. Field names in the
// schema match the json names of the model types.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{resolvers: cfg.Resolvers}
}

type executableSchema struct {
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Complexity(typeName, field string, childComplexity int, args map[string]interface{}) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	rc := graphql.GetOperationContext(ctx)
	ec := &executionContext{OperationContext: rc, resolvers: e.resolvers}

	switch rc.Operation.Operation {
	case ast.Query:
		return ec.oneShot(parsedSchema.Query)
	case ast.Mutation:
		return ec.oneShot(parsedSchema.Mutation)
	case ast.Subscription:
		return ec.subscribe(ctx)
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
}

type executionContext struct {
	*graphql.OperationContext
	resolvers ResolverRoot
}

// oneShot runs the root fields in selection order, so mutations execute
// serially. A failed root field nulls the whole result since every root
// field is non-null.
func (ec *executionContext) oneShot(root *ast.Definition) graphql.ResponseHandler {
	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		fields := graphql.CollectFields(ec.OperationContext, ec.Operation.SelectionSet, []string{root.Name})
		out := make(object, 0, len(fields))
		for _, f := range fields {
			if f.Name == "__typename" {
				out = append(out, member{f.Alias, root.Name})
				continue
			}

			v, err := ec.resolveRoot(ctx, root.Name, f)
			if err == nil {
				v, err = ec.complete(v, root.Fields.ForName(f.Name).Type, f.Selections)
			}
			if err != nil {
				ec.addError(ctx, f, err)
				return &graphql.Response{Data: []byte("null")}
			}
			out = append(out, member{f.Alias, v})
		}

		return ec.response(ctx, out)
	}
}

func (ec *executionContext) subscribe(ctx context.Context) graphql.ResponseHandler {
	fields := graphql.CollectFields(ec.OperationContext, ec.Operation.SelectionSet, []string{"Subscription"})
	if len(fields) != 1 {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "must subscribe to exactly one stream"))
	}

	f := fields[0]
	if f.Name != "plantChanged" {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unknown subscription %s", f.Name))
	}

	events, err := ec.resolvers.Subscription().PlantChanged(ctx)
	if err != nil {
		ec.addError(ctx, f, err)
		return graphql.OneShot(&graphql.Response{Data: []byte("null")})
	}

	typ := parsedSchema.Subscription.Fields.ForName(f.Name).Type
	return func(ctx context.Context) *graphql.Response {
		e, ok := <-events
		if !ok {
			return nil
		}

		v, err := ec.complete(e, typ, f.Selections)
		if err != nil {
			ec.addError(ctx, f, err)
			return &graphql.Response{Data: []byte("null")}
		}
		return ec.response(ctx, object{{f.Alias, v}})
	}
}

func (ec *executionContext) resolveRoot(ctx context.Context, typeName string, f graphql.CollectedField) (interface{}, error) {
	args := f.ArgumentMap(ec.Variables)

	switch typeName + "." + f.Name {
	case "Query.catalog":
		return ec.resolvers.Query().Catalog(ctx)
	case "Query.currentPlant":
		return ec.resolvers.Query().CurrentPlant(ctx)
	case "Query.history":
		return ec.resolvers.Query().History(ctx)
	case "Query.__schema", "Query.__type":
		return nil, errIntrospection
	case "Mutation.replace":
		input, err := replaceInput(args["input"])
		if err != nil {
			return nil, err
		}
		return ec.resolvers.Mutation().Replace(ctx, input)
	case "Mutation.water":
		amount, err := intArg(args["amount"])
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		return ec.resolvers.Mutation().Water(ctx, amount)
	case "Mutation.rename":
		nickname, _ := args["nickname"].(string)
		return ec.resolvers.Mutation().Rename(ctx, nickname)
	default:
		return nil, fmt.Errorf("no resolver for %s.%s", typeName, f.Name)
	}
}

// complete turns a resolved value into its json form and keeps only the
// selected fields.
func (ec *executionContext) complete(v interface{}, typ *ast.Type, sel ast.SelectionSet) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&generic); err != nil {
		return nil, err
	}

	if generic == nil && typ.NonNull {
		return nil, errors.New("must not be null")
	}
	return ec.project(generic, typ, sel), nil
}

func (ec *executionContext) project(v interface{}, typ *ast.Type, sel ast.SelectionSet) interface{} {
	if v == nil {
		return nil
	}

	if typ.Elem != nil {
		list, _ := v.([]interface{})
		out := make([]interface{}, len(list))
		for i, item := range list {
			out[i] = ec.project(item, typ.Elem, sel)
		}
		return out
	}

	if typ.NamedType == "ID" {
		return fmt.Sprint(v)
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return v
	}

	def := parsedSchema.Types[typ.NamedType]
	fields := graphql.CollectFields(ec.OperationContext, sel, []string{def.Name})
	out := make(object, 0, len(fields))
	for _, f := range fields {
		if f.Name == "__typename" {
			out = append(out, member{f.Alias, def.Name})
			continue
		}
		out = append(out, member{f.Alias, ec.project(obj[f.Name], def.Fields.ForName(f.Name).Type, f.Selections)})
	}
	return out
}

func (ec *executionContext) response(ctx context.Context, data object) *graphql.Response {
	buf, err := json.Marshal(data)
	if err != nil {
		graphql.AddError(ctx, err)
		return &graphql.Response{Data: []byte("null")}
	}
	return &graphql.Response{Data: buf}
}

func (ec *executionContext) addError(ctx context.Context, f graphql.CollectedField, err error) {
	graphql.AddError(ctx, gqlerror.WrapPath(ast.Path{ast.PathName(f.Alias)}, err))
}

func intArg(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		return int(i), err
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func replaceInput(v interface{}) (model.ReplaceInput, error) {
	var input model.ReplaceInput

	m, ok := v.(map[string]interface{})
	if !ok {
		return input, fmt.Errorf("input: expected an object, got %T", v)
	}

	if raw := m["index"]; raw != nil {
		i, err := intArg(raw)
		if err != nil {
			return input, fmt.Errorf("input.index: %w", err)
		}
		input.Index = &i
	}
	input.Name, _ = m["name"].(string)
	input.Confirm, _ = m["confirm"].(bool)
	return input, nil
}

type member struct {
	key   string
	value interface{}
}

// object keeps fields in selection order when marshalled.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
