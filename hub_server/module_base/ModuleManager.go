package module_base

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

var Manager IModuleManager

func init() {
	Manager = NewModuleManager()
}

const TagModule = "module"

type IModuleManager interface {
	// register with hollow instances(new(moduleX)), Init runs on registration
	RegisterModule(module IModule) error
	RegisterModules(modules []IModule) error
	UnregisterModule(id string) error
	Clear()
	GetModule(id string) IModule
	AutoFill(object interface{}) error
}

type ModuleManager struct {
	modules map[string]IModule
	lock    *sync.RWMutex
}

func NewModuleManager() IModuleManager {
	return ModuleManager{
		modules: make(map[string]IModule),
		lock:    new(sync.RWMutex),
	}
}

func (m ModuleManager) withWrite(cb func()) {
	m.lock.Lock()
	defer m.lock.Unlock()
	cb()
}

func (m ModuleManager) RegisterModule(module IModule) error {
	if err := module.Init(); err != nil {
		return err
	}
	if m.GetModule(module.Id()) != nil {
		return errors.New(fmt.Sprintf("module [%s] has already been registered", module.Id()))
	}
	m.withWrite(func() {
		m.modules[module.Id()] = module
	})
	return nil
}

// atomic register: on any failure, previously registered modules are
// unregistered in reverse order
func (m ModuleManager) RegisterModules(modules []IModule) (err error) {
	var numRegistered int
	for _, module := range modules {
		if err = m.RegisterModule(module); err != nil {
			break
		}
		numRegistered++
	}
	if err != nil {
		for i := numRegistered - 1; i >= 0; i-- {
			m.UnregisterModule(modules[i].Id())
		}
	}
	return
}

func (m ModuleManager) UnregisterModule(id string) error {
	module := m.GetModule(id)
	if module == nil {
		return errors.New(fmt.Sprintf("module [%s] does not exist", id))
	}
	err := module.Dispose()
	m.withWrite(func() {
		delete(m.modules, id)
	})
	return err
}

func (m ModuleManager) Clear() {
	var ids []string
	m.lock.RLock()
	for k := range m.modules {
		ids = append(ids, k)
	}
	m.lock.RUnlock()
	for _, id := range ids {
		m.UnregisterModule(id)
	}
}

func (m ModuleManager) GetModule(id string) IModule {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.modules[id]
}

// AutoFill sets every field tagged `module:"<id>"` to the registered module
// with that id. Works on unexported fields.
func (m ModuleManager) AutoFill(object interface{}) error {
	if object == nil {
		return nil
	}
	recvType := reflect.TypeOf(object)
	if recvType.Kind() == reflect.Ptr {
		return m.autoFillValue(reflect.ValueOf(object).Elem())
	} else if recvType.Kind() == reflect.Struct {
		return m.autoFillValue(reflect.ValueOf(object))
	}
	return errors.New("invalid object type for AutoFill")
}

func (m ModuleManager) autoFillValue(value reflect.Value) error {
	for i := 0; i < value.NumField(); i++ {
		f := value.Field(i)
		t, ok := value.Type().Field(i).Tag.Lookup(TagModule)
		if !ok {
			continue
		}
		if len(t) == 0 {
			return errors.New("empty module tag identifier")
		}
		module := m.GetModule(t)
		if module == nil {
			return errors.New(fmt.Sprintf("can not find module by id %s", t))
		}
		ptr := reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
		if !ptr.CanSet() {
			return errors.New(fmt.Sprintf("can not set field %s with module %s", f.String(), module.Id()))
		}
		ptr.Set(reflect.ValueOf(module))
	}
	return nil
}
