package fieldschema_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	v "github.com/Gobd/fieldschema"
)

var signup = v.MustSchema([]*v.FieldRules{
	v.Field("name", v.TypeString, v.Required, v.Use("name", "Invalid name.")),
	v.Field("age", v.TypeInteger, v.Required, v.Use("age", "Invalid age.", 18, 65)),
	v.Field("email", v.TypeString, v.Required, v.Use("email", "Invalid email.")),
})

func ExampleSchema_Evaluate() {
	r := signup.Evaluate(context.Background(), v.Record{
		"name":  "John Doe",
		"age":   19,
		"email": "johndoe@example.com",
	})
	fmt.Println(r.Valid())
	// Output: true
}

func ExampleSchema_Evaluate_report() {
	r := signup.Evaluate(context.Background(), v.Record{"name": "", "age": 17})
	b, _ := json.Marshal(r)
	fmt.Println(string(b))
	// Output: {"age":"Age must be at least 18.","email":"This field is required.","name":"Invalid name."}
}

func ExampleSchema_Validate() {
	err := signup.Validate(context.Background(), v.Record{"name": "Ann", "age": 70, "email": "ann@example.com"})
	fmt.Println(err)
	// Output: age: Age must be at most 65..
}

func ExampleUnmarshalAndEvaluate() {
	body := []byte(`{"name":"Bob","age":25,"email":"bob@example.com"}`)
	rec, r, err := v.UnmarshalAndEvaluate(context.Background(), signup, body, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rec["name"], r.Valid())
	// Output: Bob true
}

func ExampleLoadSchema() {
	doc := `
mode: collect_all
fields:
  username:
    type: string
    required: true
    rules:
      - name: check_range
        args: [3, 12]
`
	s, err := v.LoadSchema(strings.NewReader(doc))
	if err != nil {
		fmt.Println(err)
		return
	}
	r := s.Evaluate(context.Background(), v.Record{"username": "ab"})
	fmt.Println(r.Messages("username"))
	// Output: [Username must be between 3 and 12 characters long.]
}
