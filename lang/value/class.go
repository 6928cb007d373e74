package value

import "fmt"

// Constructor is the literal method name the spec reserves for a class's
// constructor (spec.md §6: "the constructor method name is the literal
// конструктор").
const Constructor = "конструктор"

// Class is shared; it holds a method table (looked up in definition
// order, parent walking on miss), a field-name list and an optional
// parent Class (spec.md §3).
type Class struct {
	Name    string
	Parent  *Class
	Fields  []string
	methods map[string]*Function
	order   []string // method names in definition order; FindMethod does not read it
}

// NewClass returns an empty class ready for DefineMethod calls.
func NewClass(name string) *Class {
	return &Class{Name: name, methods: make(map[string]*Function)}
}

func (c *Class) String() string { return fmt.Sprintf("<класс %s>", c.Name) }
func (*Class) Type() string     { return "класс" }

// DefineMethod inserts fn into c's method table under name, overwriting
// any previous definition of the same name on c itself (not on a parent).
func (c *Class) DefineMethod(name string, fn *Function) {
	if _, exists := c.methods[name]; !exists {
		c.order = append(c.order, name)
	}
	c.methods[name] = fn
}

// FindMethod walks c then its parent chain (spec.md §3 "Class": "optional
// parent Class"; §8 "Method dispatch") looking for name, returning the
// owning class along with the method.
func (c *Class) FindMethod(name string) (*Class, *Function) {
	for cur := c; cur != nil; cur = cur.Parent {
		if fn, ok := cur.methods[name]; ok {
			return cur, fn
		}
	}
	return nil, nil
}

// Instance is shared and mutable: a pointer to its Class plus a field map
// (spec.md §3). Object identity is by reference.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance returns a fresh Instance of class with an empty field map.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) String() string { return fmt.Sprintf("<экземпляр %s>", i.Class.Name) }
func (*Instance) Type() string     { return "экземпляр" }

// BoundMethod pairs a receiver Instance with a method Function, so
// calling it injects the receiver as slot 0 (spec.md §3, GLOSSARY "Bound
// method"). Two BoundMethods built from the same instance.m are distinct
// values (spec.md §8 "Bound-method identity") since each GetProperty
// allocates a fresh one.
type BoundMethod struct {
	Receiver *Instance
	Method   *Function
}

func (b *BoundMethod) String() string {
	return fmt.Sprintf("<связанный метод %s.%s>", b.Receiver.Class.Name, b.Method.Name)
}
func (*BoundMethod) Type() string { return "функция" }
