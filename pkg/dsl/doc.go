/*
Package dsl provides a fluent builder for libstate graphs.

It is a thin layer over package graph: states and transitions are collected in declaration
order and registered when Build is called, so targets may be declared after the states that
reference them.

Example usage:

	b := dsl.New[string]()
	b.Start("first")

	b.Add("first").
		Do(setData).
		Branch(dataIsOne, "second").
		Go("fourth")

	b.Add("second").Do(increment).Go("third")
	b.Add("third").Do(increment).Go("first")
	b.Add("fourth").Do(increment).Terminal()

	g, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	runner, err := libstate.New(g)
*/
package dsl
