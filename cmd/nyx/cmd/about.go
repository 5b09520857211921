package cmd

import "fmt"

func printAbout() {
	fmt.Println("Nyx Language")
	fmt.Println("------------")
	fmt.Println("Nyx is a lightweight, dynamically-typed scripting language designed for ease of use.")
	fmt.Println("It supports procedural programming with features including:")
	fmt.Println("  - Variables (dynamic typing with 'auto')")
	fmt.Println("  - Basic arithmetic and logical operations")
	fmt.Println("  - Control flow (if/else, for loops, break, continue)")
	fmt.Println("  - Lists (creation, indexing, len, concatenation, repetition)")
	fmt.Println("  - Functions (definition, call, return, closures, imports)")
	fmt.Println("  - String interpolation with #{expression}")
	fmt.Println("  - Simple console output (output, put)")
	fmt.Println()
	fmt.Println("Developed as a learning and experimentation project.")
}
