package command

import "sort"

var registry = map[string]Command{}

func Register(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

func All() []Command {
	list := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
